// Package repository defines the durable user profile store and its errors.
package repository

import (
	"context"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/domain/model"
)

// Seed carries optional profile fields supplied at first access.
type Seed struct {
	UserName          string
	Age               string
	City              string
	District          string
	SportInterests    []string
	EventTypePriority []string
}

// Update carries replace-style profile fields. Nil pointers and nil slices
// leave the corresponding field untouched.
type Update struct {
	UserName          *string
	Age               *string
	City              *string
	District          *string
	SportInterests    []string
	EventTypePriority []string
}

// Catalog is the subset of the catalog client the store needs to denormalize
// click snapshots.
type Catalog interface {
	GetSport(ctx context.Context, id string) (catalog.Sport, error)
	GetTeam(ctx context.Context, id string) (catalog.Team, error)
	GetMatch(ctx context.Context, id string) (catalog.Match, error)
	GetTournament(ctx context.Context, id string) (catalog.Tournament, error)
}

// Store provides read/write access to user profiles.
//
// Implementations are not safe for concurrent use; callers must serialize
// access externally. Every mutating call flushes the full store before
// returning.
type Store interface {
	// GetOrCreate returns the profile for userID, creating it with the
	// documented defaults (overlaid with seed, when non-nil) if absent.
	// Idempotent for existing ids.
	GetOrCreate(ctx context.Context, userID string, seed *Seed) (*model.Profile, error)

	// Get returns the profile for userID or ErrNotFound.
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// Replace overwrites only the fields named in update.
	// Returns ErrNotFound for unknown ids.
	Replace(ctx context.Context, userID string, update Update) (*model.Profile, error)

	// Click tracking. Each call increments the relevant counters, maintains
	// the ordered interest/team sets, and, for events and tournaments,
	// appends an immutable snapshot record built from catalog data.
	RecordSportClick(ctx context.Context, userID, sportID string) error
	RecordTeamClick(ctx context.Context, userID, teamID string) error
	RecordEventClick(ctx context.Context, userID, eventID string) (model.EventRecord, error)
	RecordTournamentClick(ctx context.Context, userID, tournamentID string) (model.EventRecord, error)

	// UserStats returns an interaction summary for one user.
	// Returns ErrNotFound for unknown ids.
	UserStats(ctx context.Context, userID string) (Stats, error)

	// Profiles returns every profile in insertion order.
	Profiles(ctx context.Context) []*model.Profile

	// Count returns the number of profiles tracked.
	Count(ctx context.Context) int

	// Version increases by one on every mutation; readers use it to detect
	// staleness of derived state such as the similarity matrix.
	Version() uint64
}
