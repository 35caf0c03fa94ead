// Package catalog provides the read-only client for the external catalog
// service: the system of record for sports, teams, locations, matches and
// tournaments.
package catalog

import (
	"context"
	"time"
)

// Sport is a catalog sport record.
type Sport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a catalog team record.
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	LogoURL      string   `json:"logo_url,omitempty"`
	SportIDs     []string `json:"sport_ids,omitempty"`
	CategoryID   string   `json:"category_id,omitempty"`
	HomeMatchIDs []string `json:"home_match_ids,omitempty"`
	AwayMatchIDs []string `json:"away_match_ids,omitempty"`
}

// Location is a catalog venue record.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
}

// Match is a catalog match record, scheduled on a concrete date.
type Match struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time,omitempty"`
	SportID    string    `json:"sport_id,omitempty"`
	HomeTeamID string    `json:"home_team_id,omitempty"`
	AwayTeamID string    `json:"away_team_id,omitempty"`
	LocationID string    `json:"location_id,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
}

// Tournament is a catalog tournament record.
type Tournament struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date,omitempty"`
	SportID    string    `json:"sport_id,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	LocationID string    `json:"location_id,omitempty"`
	MatchIDs   []string  `json:"match_ids,omitempty"`
}

// Client provides read access to the catalog service.
//
// List and query operations return an empty slice, not an error, for a
// legitimately empty result; errors indicate transport or query failure.
type Client interface {
	ListSports(ctx context.Context) ([]Sport, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListLocations(ctx context.Context) ([]Location, error)
	ListTournaments(ctx context.Context) ([]Tournament, error)

	// Get operations return ErrNotFound for unknown ids.
	GetSport(ctx context.Context, id string) (Sport, error)
	GetTeam(ctx context.Context, id string) (Team, error)
	GetMatch(ctx context.Context, id string) (Match, error)
	GetTournament(ctx context.Context, id string) (Tournament, error)

	// QueryUpcomingMatches returns matches strictly after now and within
	// daysAhead days, ordered by date, with the soft-filter fallback applied
	// over the sport, team, and location filters.
	QueryUpcomingMatches(ctx context.Context, sportIDs, teamIDs, locationIDs []string, daysAhead int) ([]Match, error)

	// QueryEventsByDateRange returns matches within [start, end), ordered by
	// date, with the soft-filter fallback applied.
	QueryEventsByDateRange(ctx context.Context, start, end time.Time, sportIDs, teamIDs, locationIDs []string) ([]Match, error)
}
