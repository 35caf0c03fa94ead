// Package model contains the durable user profile types passed between layers.
package model

import (
	"strings"
	"time"
)

// Interaction record type tags.
const (
	RecordTypeMatch      = "MATCH"
	RecordTypeTournament = "TOURNAMENT"
)

// DefaultAge is the age descriptor stored when a profile is created without
// seed data.
const DefaultAge = "DEFAULT"

// DefaultEventTypePriority is the event-type priority list stored when a
// profile is created without seed data.
func DefaultEventTypePriority() []string {
	return []string{"match", "tournament"}
}

// EventRecord is an immutable snapshot of display data captured at click
// time. Later catalog changes never retroactively alter it.
type EventRecord struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	Date           time.Time `json:"event_date"`
	Time           string    `json:"event_time,omitempty"`
	SportID        string    `json:"sport_id"`
	SportName      string    `json:"sport_name"`
	HomeTeamID     string    `json:"home_team_id,omitempty"`
	AwayTeamID     string    `json:"away_team_id,omitempty"`
	HomeTeamName   string    `json:"home_team,omitempty"`
	AwayTeamName   string    `json:"away_team,omitempty"`
	TournamentName string    `json:"tournament_name,omitempty"`
	StartDate      time.Time `json:"start_date,omitempty"`
	EndDate        time.Time `json:"end_date,omitempty"`
	CategoryID     string    `json:"category_id,omitempty"`
	LocationID     string    `json:"location_id,omitempty"`
	MatchIDs       []string  `json:"match_ids,omitempty"`
	ClickedAt      time.Time `json:"timestamp"`
}

// Profile is the durable per-user interaction record. One exists per user id
// and is never deleted. All counters are monotonically non-decreasing and are
// mutated only through the increment helpers below.
type Profile struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Age      string `json:"age"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`

	// SportInterests is an ordered set: insertion order is declared priority,
	// no duplicates.
	SportInterests   []string       `json:"sport_interests"`
	SportsLikedCount map[string]int `json:"sports_liked_count"`

	// TeamsLiked is an ordered set of team ids, no duplicates.
	TeamsLiked     []string       `json:"teams_liked"`
	TeamLikedSport map[string]int `json:"team_liked_sport"`

	PlayerLikedSports   map[string]int `json:"player_liked_sports_count"`
	TrainingSportsLiked map[string]int `json:"training_sports_liked"`

	// TrainingSports, TrainingTeams, and TrainingLocations are parallel
	// ordered lists: entry i describes one training interaction.
	TrainingSports    []string `json:"training_sport"`
	TrainingTeams     []string `json:"training_liked_teams"`
	TrainingLocations []string `json:"training_location"`

	EventTypePriority []string `json:"event_type_priority"`

	// EventsLiked is append-only, ordered by insertion (not by event date).
	EventsLiked []EventRecord `json:"events_liked"`

	EventsClicked map[string]int `json:"events_clicked"`
	SportsClicked map[string]int `json:"sports_clicked"`
	TeamsClicked  map[string]int `json:"teams_clicked"`
}

// Clone returns a deep copy of the record, detached from any backing slices.
func (r EventRecord) Clone() EventRecord {
	out := r
	out.MatchIDs = copyStrings(r.MatchIDs)
	return out
}

// Clone returns a deep copy of the profile. Callers that hand profile state
// outside the store's serialization boundary must clone first, so readers
// never share maps or slices with in-place mutation.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.SportInterests = copyStrings(p.SportInterests)
	out.SportsLikedCount = copyCounts(p.SportsLikedCount)
	out.TeamsLiked = copyStrings(p.TeamsLiked)
	out.TeamLikedSport = copyCounts(p.TeamLikedSport)
	out.PlayerLikedSports = copyCounts(p.PlayerLikedSports)
	out.TrainingSportsLiked = copyCounts(p.TrainingSportsLiked)
	out.TrainingSports = copyStrings(p.TrainingSports)
	out.TrainingTeams = copyStrings(p.TrainingTeams)
	out.TrainingLocations = copyStrings(p.TrainingLocations)
	out.EventTypePriority = copyStrings(p.EventTypePriority)
	out.EventsClicked = copyCounts(p.EventsClicked)
	out.SportsClicked = copyCounts(p.SportsClicked)
	out.TeamsClicked = copyCounts(p.TeamsClicked)
	if p.EventsLiked != nil {
		out.EventsLiked = make([]EventRecord, len(p.EventsLiked))
		for i, r := range p.EventsLiked {
			out.EventsLiked[i] = r.Clone()
		}
	}
	return &out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyCounts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// NewProfile creates a profile with the documented defaults.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:              userID,
		Age:                 DefaultAge,
		SportInterests:      []string{},
		SportsLikedCount:    map[string]int{},
		TeamsLiked:          []string{},
		TeamLikedSport:      map[string]int{},
		PlayerLikedSports:   map[string]int{},
		TrainingSportsLiked: map[string]int{},
		TrainingSports:      []string{},
		TrainingTeams:       []string{},
		TrainingLocations:   []string{},
		EventTypePriority:   DefaultEventTypePriority(),
		EventsLiked:         []EventRecord{},
		EventsClicked:       map[string]int{},
		SportsClicked:       map[string]int{},
		TeamsClicked:        map[string]int{},
	}
}

// AddInterest appends a sport to the interest list if not already present.
func (p *Profile) AddInterest(sportID string) {
	for _, s := range p.SportInterests {
		if s == sportID {
			return
		}
	}
	p.SportInterests = append(p.SportInterests, sportID)
}

// AddTeam appends a team to the liked list if not already present.
func (p *Profile) AddTeam(teamID string) {
	for _, t := range p.TeamsLiked {
		if t == teamID {
			return
		}
	}
	p.TeamsLiked = append(p.TeamsLiked, teamID)
}

// HasTeam reports whether the team is in the liked list.
func (p *Profile) HasTeam(teamID string) bool {
	for _, t := range p.TeamsLiked {
		if t == teamID {
			return true
		}
	}
	return false
}

// AddEventTypePriority appends a category tag if not already present in any
// casing.
func (p *Profile) AddEventTypePriority(tag string) {
	for _, t := range p.EventTypePriority {
		if strings.EqualFold(t, tag) {
			return
		}
	}
	p.EventTypePriority = append(p.EventTypePriority, tag)
}

// LikeSport registers a sport click signal: increments the liked counter and
// declares the interest if new.
func (p *Profile) LikeSport(sportID string) {
	p.SportsLikedCount[sportID]++
	p.AddInterest(sportID)
}
