package seedclicks

import "time"

// Config holds configuration for the click seeding run
type Config struct {
	BaseURL       string        // Base URL of the service
	NumUsers      int           // Number of synthetic users to create
	ClicksPerUser int           // Number of clicks to submit per user
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Output file for generated plans
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging
}

// Click represents a single interaction to submit
type Click struct {
	Kind string `json:"kind"` // sport or team
	ID   string `json:"id"`
}

// UserPlan describes the traffic generated for one synthetic user
type UserPlan struct {
	UserID        string  `json:"user_id"`
	Persona       string  `json:"persona"`
	DominantSport string  `json:"dominant_sport"`
	Clicks        []Click `json:"clicks"`
}

// catalogEntry is the subset of catalog fields the tool needs
type catalogEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	SportIDs []string `json:"sport_ids,omitempty"`
}

// sportsResponse is the body of GET /api/sports
type sportsResponse struct {
	Sports []catalogEntry `json:"sports"`
}

// teamsResponse is the body of GET /api/teams
type teamsResponse struct {
	Teams []catalogEntry `json:"teams"`
}

// profileResponse is the body of POST /api/users/initialize/{id}
type profileResponse struct {
	UserID string `json:"user_id"`
}

// homepageResponse is the body of GET /api/recommend/{id}/homepage
type homepageResponse struct {
	UserID          string `json:"user_id"`
	Recommendations struct {
		FavoriteSports []string `json:"favorite_sports"`
	} `json:"recommendations"`
}

// Stats holds run statistics
type Stats struct {
	UsersCreated     int
	ClicksGenerated  int
	ClicksSubmitted  int
	ClicksSuccessful int
	ClicksFailed     int
	SurfacesFetched  int
	UsersVerified    int
	UsersMismatched  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
