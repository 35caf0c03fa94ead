// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// CatalogHandler handles read-only catalog passthrough requests.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleSports handles GET /api/sports requests.
func (h *CatalogHandler) HandleSports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sports, err := h.deps.ListSports(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sports": sports})
}

// HandleTeams handles GET /api/teams requests.
func (h *CatalogHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teams, err := h.deps.ListTeams(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

// HandleLocations handles GET /api/locations requests.
func (h *CatalogHandler) HandleLocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	locations, err := h.deps.ListLocations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

// HandleTournaments handles GET /api/tournaments requests.
func (h *CatalogHandler) HandleTournaments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tournaments, err := h.deps.ListTournaments(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
}

// HandleUpcomingEvents handles GET /api/events?days_ahead=N requests.
func (h *CatalogHandler) HandleUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	daysAhead := 7
	if raw := r.URL.Query().Get("days_ahead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid days_ahead %q", raw))
			return
		}
		daysAhead = n
	}

	now := time.Now()
	events, err := h.deps.EventsByDateRange(r.Context(), now, now.AddDate(0, 0, daysAhead), nil, nil, nil)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// dateRangeRequest mirrors the POST /api/events/date-range payload.
type dateRangeRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	SportID    string `json:"sport_id,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
	LocationID string `json:"location_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q; want YYYY-MM-DD", raw)
	}
	return t, nil
}

// HandleDateRange handles POST /api/events/date-range requests.
func (h *CatalogHandler) HandleDateRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req dateRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	start, err := parseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	asFilter := func(id string) []string {
		if id == "" {
			return nil
		}
		return []string{id}
	}
	events, err := h.deps.EventsByDateRange(r.Context(), start, end,
		asFilter(req.SportID), asFilter(req.TeamID), asFilter(req.LocationID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Limit > 0 && len(events) > req.Limit {
		events = events[:req.Limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
