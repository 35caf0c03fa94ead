// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/altersport/internal/adapters/repository"
	"github.com/okian/altersport/internal/domain/model"
)

// ProfileHandler handles user profile requests.
type ProfileHandler struct {
	deps Dependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps Dependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// initializeRequest mirrors the onboarding payload. Every field is
// optional; absent fields fall back to the store defaults.
type initializeRequest struct {
	UserName          string   `json:"user_name,omitempty"`
	Age               string   `json:"age,omitempty"`
	City              string   `json:"city,omitempty"`
	District          string   `json:"district,omitempty"`
	SportInterests    []string `json:"sport_interests,omitempty"`
	EventTypePriority []string `json:"event_type_priority,omitempty"`
}

func (req initializeRequest) seed() *repository.Seed {
	return &repository.Seed{
		UserName:          req.UserName,
		Age:               req.Age,
		City:              req.City,
		District:          req.District,
		SportInterests:    req.SportInterests,
		EventTypePriority: req.EventTypePriority,
	}
}

// updateRequest mirrors the profile update payload. Nil means "leave as is".
type updateRequest struct {
	UserName          *string  `json:"user_name"`
	Age               *string  `json:"age"`
	City              *string  `json:"city"`
	District          *string  `json:"district"`
	SportInterests    []string `json:"sport_interests"`
	EventTypePriority []string `json:"event_type_priority"`
}

type profileResponse struct {
	UserID  string         `json:"user_id"`
	Profile *model.Profile `json:"profile"`
}

// HandleInitialize handles POST /api/users/initialize/{user_id} requests.
// An absent or blank user id mints a new one.
func (h *ProfileHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/api/users/initialize")
	userID = strings.Trim(userID, "/")
	if strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	var seed *repository.Seed
	if r.Body != nil && r.ContentLength != 0 {
		var req initializeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		seed = req.seed()
	}

	p, err := h.deps.InitializeUser(r.Context(), userID, seed)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{UserID: p.UserID, Profile: p})
}

// HandleUser handles GET and PUT /api/users/{user_id} and
// GET /api/users/{user_id}/stats requests.
func (h *ProfileHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if userID, ok := strings.CutSuffix(path, "/stats"); ok {
		h.handleStats(w, r, userID)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, path)
	case http.MethodPut:
		h.handleUpdate(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.deps.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{UserID: userID, Profile: p})
}

func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID string) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p, err := h.deps.UpdateProfile(r.Context(), userID, repository.Update{
		UserName:          req.UserName,
		Age:               req.Age,
		City:              req.City,
		District:          req.District,
		SportInterests:    req.SportInterests,
		EventTypePriority: req.EventTypePriority,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{UserID: userID, Profile: p})
}

func (h *ProfileHandler) handleStats(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet || userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	stats, err := h.deps.UserStats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
