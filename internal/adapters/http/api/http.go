// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/adapters/repository"
	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/internal/domain/quiz"
	"github.com/okian/altersport/internal/domain/recommend"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Profile lifecycle.
	InitializeUser(ctx context.Context, userID string, seed *repository.Seed) (*model.Profile, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update repository.Update) (*model.Profile, error)
	UserStats(ctx context.Context, userID string) (repository.Stats, error)

	// Click tracking.
	TrackSportClick(ctx context.Context, userID, sportID string) error
	TrackTeamClick(ctx context.Context, userID, teamID string) error
	TrackEventClick(ctx context.Context, userID, eventID string) (model.EventRecord, error)
	TrackTournamentClick(ctx context.Context, userID, tournamentID string) (model.EventRecord, error)

	// Recommendation surfaces.
	HomepageRecommendations(ctx context.Context, userID string, limit int) (recommend.HomepageResult, error)
	SportRecommendations(ctx context.Context, userID, sportID string, limit int) (recommend.SportResult, error)
	EventRecommendations(ctx context.Context, userID string, limit int) ([]recommend.EventItem, error)
	TournamentRecommendations(ctx context.Context, userID string, limit int) ([]recommend.EventItem, error)
	UserFavorites(ctx context.Context, userID string, limit int) (recommend.FavoritesResult, error)
	RealTimeMatchRecommendations(ctx context.Context, userID string, limit int) ([]recommend.MatchItem, error)
	QuizRecommendation(style quiz.GroupStyle, activities []quiz.Activity, age quiz.AgeGroup) string

	// Catalog passthroughs.
	ListSports(ctx context.Context) ([]catalog.Sport, error)
	ListTeams(ctx context.Context) ([]catalog.Team, error)
	ListLocations(ctx context.Context) ([]catalog.Location, error)
	ListTournaments(ctx context.Context) ([]catalog.Tournament, error)
	EventsByDateRange(ctx context.Context, start, end time.Time, sportIDs, teamIDs, locationIDs []string) ([]catalog.Match, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	profileHandler   *ProfileHandler
	trackHandler     *TrackHandler
	recommendHandler *RecommendHandler
	catalogHandler   *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		profileHandler:   NewProfileHandler(deps),
		trackHandler:     NewTrackHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/users/initialize", MetricsMiddleware(s.profileHandler.HandleInitialize, "users_initialize"))
	mux.HandleFunc("/api/users/initialize/", MetricsMiddleware(s.profileHandler.HandleInitialize, "users_initialize"))
	mux.HandleFunc("/api/users/", MetricsMiddleware(s.profileHandler.HandleUser, "users"))
	mux.HandleFunc("/api/track/", MetricsMiddleware(s.trackHandler.HandleTrack, "track"))
	mux.HandleFunc("/api/recommend/quiz", MetricsMiddleware(s.recommendHandler.HandleQuiz, "recommend_quiz"))
	mux.HandleFunc("/api/recommend/", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/api/events/date-range", MetricsMiddleware(s.catalogHandler.HandleDateRange, "events_date_range"))
	mux.HandleFunc("/api/events", MetricsMiddleware(s.catalogHandler.HandleUpcomingEvents, "events"))
	mux.HandleFunc("/api/sports", MetricsMiddleware(s.catalogHandler.HandleSports, "sports"))
	mux.HandleFunc("/api/teams", MetricsMiddleware(s.catalogHandler.HandleTeams, "teams"))
	mux.HandleFunc("/api/locations", MetricsMiddleware(s.catalogHandler.HandleLocations, "locations"))
	mux.HandleFunc("/api/tournaments", MetricsMiddleware(s.catalogHandler.HandleTournaments, "tournaments"))
}

type statusResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates store and catalog errors to status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound) || errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrInvalidAge):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, catalog.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "catalog_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// limitParam parses the optional ?limit= query parameter.
func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
