// Package recommend assembles the user-facing recommendation surfaces from
// profile history, similarity neighbors and live catalog data.
package recommend

import (
	"context"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/pkg/logger"
)

const (
	// defaultNeighborCount is how many similar users feed each surface.
	defaultNeighborCount = 3

	// Favorite-signal caps used to seed live catalog queries.
	homepageSportSeed = 3
	homepageTeamSeed  = 10
	realtimeSportSeed = 3
	realtimeTeamSeed  = 5

	// Expanding real-time query windows, in days.
	realtimeFullWindow      = 20
	realtimeSportOnlyWindow = 7
	realtimeOpenWindow      = 5

	// homepageLiveWindow bounds the live upcoming-events query on the
	// homepage surface.
	homepageLiveWindow = 7
)

// ProfileSource resolves user profiles for the surfaces.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
}

// NeighborSource returns the profiles most similar to the given user, best
// first. The caller guarantees the result never contains the user itself.
type NeighborSource interface {
	Neighbors(ctx context.Context, userID string, k int) []*model.Profile
}

// Aggregator computes every recommendation surface. It holds no mutable
// state of its own; all signal comes from the injected collaborators.
type Aggregator struct {
	profiles  ProfileSource
	neighbors NeighborSource
	catalog   catalog.Client
	log       logger.Logger
	now       func() time.Time
	neighborK int
}

// Option configures the aggregator.
type Option func(*Aggregator)

// WithNeighborCount overrides how many similar users feed each surface.
func WithNeighborCount(k int) Option {
	return func(a *Aggregator) {
		if k > 0 {
			a.neighborK = k
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger overrides the package logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an aggregator over the given collaborators.
func New(profiles ProfileSource, neighbors NeighborSource, cat catalog.Client, opts ...Option) *Aggregator {
	a := &Aggregator{
		profiles:  profiles,
		neighbors: neighbors,
		catalog:   cat,
		log:       logger.Named("recommend"),
		now:       time.Now,
		neighborK: defaultNeighborCount,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// EventItem is one event entry on an event-like surface. Entries sourced
// from a live catalog query carry FromAPI and, when resolvable, team logos.
type EventItem struct {
	model.EventRecord
	HomeTeamLogo string `json:"home_team_logo,omitempty"`
	AwayTeamLogo string `json:"away_team_logo,omitempty"`
	FromAPI      bool   `json:"from_api,omitempty"`
}

// TeamItem is one recommended team, enriched from the catalog.
type TeamItem struct {
	TeamID  string `json:"team"`
	Clicks  int    `json:"clicks,omitempty"`
	Name    string `json:"name,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// TrainingItem is one training opportunity from the parallel training lists.
type TrainingItem struct {
	Team     string `json:"team"`
	Location string `json:"location,omitempty"`
}

// MatchItem is one real-time match recommendation.
type MatchItem struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	Date          time.Time `json:"event_date"`
	Time          string    `json:"event_time,omitempty"`
	SportID       string    `json:"sport_id"`
	SportName     string    `json:"sport_name"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	HomeTeamLogo  string    `json:"home_team_logo,omitempty"`
	AwayTeamLogo  string    `json:"away_team_logo,omitempty"`
	LocationID    string    `json:"location_id,omitempty"`
	IsRecommended bool      `json:"is_recommended"`
}

// HomepageResult bundles the three independent homepage sub-results.
type HomepageResult struct {
	FavoriteSports   []string    `json:"favorite_sports"`
	UpcomingEvents   []EventItem `json:"upcoming_events"`
	RecommendedTeams []TeamItem  `json:"recommended_teams"`
}

// SportResult bundles the sport-scoped sub-results.
type SportResult struct {
	Teams    []TeamItem     `json:"teams"`
	Events   []EventItem    `json:"events"`
	Training []TrainingItem `json:"training"`
}

// FavoritesResult bundles the user's own declared favorites.
type FavoritesResult struct {
	Sports []string    `json:"sports"`
	Teams  []string    `json:"teams"`
	Events []EventItem `json:"events"`
}
