// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// TrackHandler handles click tracking requests.
type TrackHandler struct {
	deps Dependencies
}

// NewTrackHandler creates a new tracking handler.
func NewTrackHandler(deps Dependencies) *TrackHandler {
	return &TrackHandler{deps: deps}
}

// HandleTrack handles POST /api/track/{user_id}/{kind}/{entity_id}
// requests, where kind is one of sport, team, event, tournament.
func (h *TrackHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/track/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	userID, kind, entityID := parts[0], parts[1], parts[2]

	ctx := r.Context()
	switch kind {
	case "sport":
		if err := h.deps.TrackSportClick(ctx, userID, entityID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	case "team":
		if err := h.deps.TrackTeamClick(ctx, userID, entityID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	case "event":
		rec, err := h.deps.TrackEventClick(ctx, userID, entityID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "success", Data: rec})
	case "tournament":
		rec, err := h.deps.TrackTournamentClick(ctx, userID, entityID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "success", Data: rec})
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}
