// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/altersport/internal/domain/quiz"
)

// Default result sizes when the caller passes no limit, mirroring the
// public API contract.
const (
	homepageDefaultLimit = 10
	surfaceDefaultLimit  = 5
)

// RecommendHandler handles recommendation surface requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommend handles GET /api/recommend/{user_id}/{surface} requests.
// Surfaces: homepage, sport/{sport_id}, events, tournaments, favorites,
// matches.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/recommend/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	userID, surface := parts[0], parts[1]
	ctx := r.Context()

	switch {
	case surface == "homepage" && len(parts) == 2:
		res, err := h.deps.HomepageRecommendations(ctx, userID, limitParam(r, homepageDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "recommendations": res})

	case surface == "sport" && len(parts) == 3 && parts[2] != "":
		sportID := parts[2]
		res, err := h.deps.SportRecommendations(ctx, userID, sportID, limitParam(r, surfaceDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "sport_id": sportID, "recommendations": res})

	case surface == "events" && len(parts) == 2:
		res, err := h.deps.EventRecommendations(ctx, userID, limitParam(r, surfaceDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "recommendations": res})

	case surface == "tournaments" && len(parts) == 2:
		res, err := h.deps.TournamentRecommendations(ctx, userID, limitParam(r, surfaceDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "recommendations": res})

	case surface == "favorites" && len(parts) == 2:
		res, err := h.deps.UserFavorites(ctx, userID, limitParam(r, surfaceDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "favorites": res})

	case surface == "matches" && len(parts) == 2:
		res, err := h.deps.RealTimeMatchRecommendations(ctx, userID, limitParam(r, surfaceDefaultLimit))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "matches": res})

	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}

// quizRequest mirrors the onboarding questionnaire payload.
type quizRequest struct {
	GroupStyle string   `json:"group_style"`
	Activities []string `json:"activities"`
	AgeGroup   string   `json:"age_group"`
}

var quizActivities = map[string]quiz.Activity{
	"running":                quiz.ActivityRunning,
	"strength_and_endurance": quiz.ActivityStrengthAndEndurance,
	"strategic_planning":     quiz.ActivityStrategicPlanning,
	"balance_and_agility":    quiz.ActivityBalanceAndAgility,
	"martial_arts":           quiz.ActivityMartialArts,
	"swimming_and_water":     quiz.ActivitySwimmingAndWater,
	"dance_and_rhythm":       quiz.ActivityDanceAndRhythm,
	"ball":                   quiz.ActivityBall,
	"other":                  quiz.ActivityOther,
}

var quizAgeGroups = map[string]quiz.AgeGroup{
	"preschool":      quiz.AgeGroupPreschool,
	"primary_school": quiz.AgeGroupPrimarySchool,
	"juniors":        quiz.AgeGroupJuniors,
	"adults":         quiz.AgeGroupAdults,
	"veterans":       quiz.AgeGroupVeterans,
}

// HandleQuiz handles POST /api/recommend/quiz requests, scoring the
// questionnaire and returning the winning sport id.
func (h *RecommendHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var style quiz.GroupStyle
	switch strings.ToLower(req.GroupStyle) {
	case "team":
		style = quiz.GroupStyleTeam
	case "individual":
		style = quiz.GroupStyleIndividual
	case "default", "":
		style = quiz.GroupStyleUnspecified
	default:
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown group_style %q", req.GroupStyle))
		return
	}

	activities := make([]quiz.Activity, 0, len(req.Activities))
	for _, raw := range req.Activities {
		a, ok := quizActivities[strings.ToLower(raw)]
		if !ok {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown activity %q", raw))
			return
		}
		activities = append(activities, a)
	}

	var age quiz.AgeGroup
	if req.AgeGroup != "" {
		var ok bool
		age, ok = quizAgeGroups[strings.ToLower(req.AgeGroup)]
		if !ok {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown age_group %q", req.AgeGroup))
			return
		}
	}

	sportID := h.deps.QuizRecommendation(style, activities, age)
	writeJSON(w, http.StatusOK, map[string]string{"sport_id": sportID})
}
