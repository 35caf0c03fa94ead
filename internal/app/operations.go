package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/adapters/repository"
	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/internal/domain/quiz"
	"github.com/okian/altersport/internal/domain/recommend"
	"github.com/okian/altersport/pkg/metrics"
)

// Per-surface default limits applied when the caller passes none.
const (
	defaultHomepageLimit = 10
	defaultSurfaceLimit  = 5
)

// InitializeUser returns the profile for userID, creating it when absent.
// A blank id mints a fresh one.
func (s *Service) InitializeUser(ctx context.Context, userID string, seed *repository.Seed) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == "" {
		userID = uuid.NewString()
	}
	p, err := s.store.GetOrCreate(ctx, userID, seed)
	if err != nil {
		return nil, err
	}
	metrics.UpdateProfilesTotal(s.store.Count(ctx))
	return p.Clone(), nil
}

// GetProfile returns an existing profile or repository.ErrNotFound.
// The result is a deep copy; callers encode it after the mutex is released,
// so it must not share maps or slices with the live store record.
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// UpdateProfile overwrites the fields named in update.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update repository.Update) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.store.Replace(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// TrackSportClick registers a sport click for the user.
func (s *Service) TrackSportClick(ctx context.Context, userID, sportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RecordSportClick(ctx, userID, sportID)
}

// TrackTeamClick registers a team click for the user.
func (s *Service) TrackTeamClick(ctx context.Context, userID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RecordTeamClick(ctx, userID, teamID)
}

// TrackEventClick registers a match click and returns the stored snapshot.
func (s *Service) TrackEventClick(ctx context.Context, userID, eventID string) (model.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.store.RecordEventClick(ctx, userID, eventID)
	if err != nil {
		return model.EventRecord{}, err
	}
	return rec.Clone(), nil
}

// TrackTournamentClick registers a tournament click and returns the stored
// snapshot.
func (s *Service) TrackTournamentClick(ctx context.Context, userID, tournamentID string) (model.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.store.RecordTournamentClick(ctx, userID, tournamentID)
	if err != nil {
		return model.EventRecord{}, err
	}
	return rec.Clone(), nil
}

// UserStats returns the interaction summary for one user.
func (s *Service) UserStats(ctx context.Context, userID string) (repository.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UserStats(ctx, userID)
}

// HomepageRecommendations returns the homepage surface.
func (s *Service) HomepageRecommendations(ctx context.Context, userID string, limit int) (recommend.HomepageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.Homepage(ctx, userID, s.clampLimit(limit, defaultHomepageLimit))
}

// SportRecommendations returns the sport-scoped surface.
func (s *Service) SportRecommendations(ctx context.Context, userID, sportID string, limit int) (recommend.SportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.Sport(ctx, userID, sportID, s.clampLimit(limit, defaultSurfaceLimit))
}

// EventRecommendations returns the match feed.
func (s *Service) EventRecommendations(ctx context.Context, userID string, limit int) ([]recommend.EventItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.Events(ctx, userID, s.clampLimit(limit, defaultSurfaceLimit))
}

// TournamentRecommendations returns the tournament feed.
func (s *Service) TournamentRecommendations(ctx context.Context, userID string, limit int) ([]recommend.EventItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.Tournaments(ctx, userID, s.clampLimit(limit, defaultSurfaceLimit))
}

// UserFavorites returns the user's own favorites.
func (s *Service) UserFavorites(ctx context.Context, userID string, limit int) (recommend.FavoritesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.Favorites(ctx, userID, s.clampLimit(limit, defaultSurfaceLimit))
}

// RealTimeMatchRecommendations returns live upcoming matches.
func (s *Service) RealTimeMatchRecommendations(ctx context.Context, userID string, limit int) ([]recommend.MatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregator.RealTimeMatches(ctx, userID, s.clampLimit(limit, defaultSurfaceLimit))
}

// QuizRecommendation scores the onboarding questionnaire. Pure computation;
// no lock needed.
func (s *Service) QuizRecommendation(style quiz.GroupStyle, activities []quiz.Activity, age quiz.AgeGroup) string {
	return quiz.Recommend(style, activities, age)
}

// Catalog passthroughs used by the read-only catalog endpoints.

func (s *Service) ListSports(ctx context.Context) ([]catalog.Sport, error) {
	return s.catalog.ListSports(ctx)
}

func (s *Service) ListTeams(ctx context.Context) ([]catalog.Team, error) {
	return s.catalog.ListTeams(ctx)
}

func (s *Service) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	return s.catalog.ListLocations(ctx)
}

func (s *Service) ListTournaments(ctx context.Context) ([]catalog.Tournament, error) {
	return s.catalog.ListTournaments(ctx)
}

func (s *Service) EventsByDateRange(ctx context.Context, start, end time.Time, sportIDs, teamIDs, locationIDs []string) ([]catalog.Match, error) {
	return s.catalog.QueryEventsByDateRange(ctx, start, end, sportIDs, teamIDs, locationIDs)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"neighborCount": s.neighborCount,
		"maxLimit":      s.maxLimit,
	}

	if s.started {
		ctx := context.Background()
		total := s.store.Count(ctx)
		stats["totalProfiles"] = total
		stats["matrixSize"] = s.engine.Size()
		stats["storePath"] = s.storePath

		metrics.UpdateProfilesTotal(total)
	}

	return stats
}
