package seedclicks

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/altersport/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	personaDivisor     = 4
)

// Persona share of clicks that go to the dominant sport.
const (
	diehardShare  = 0.8
	casualShare   = 0.5
	explorerShare = 0.3
)

// Persona case values.
const (
	caseDiehard  = 0
	caseCasual   = 1
	caseExplorer = 2
	caseTeamFan  = 3
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomIndex returns a random index in [0, n) using crypto/rand.
func getRandomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generatePlans creates click plans for the configured number of users.
// Every plan has a dominant sport that receives the persona's share of
// sport clicks, so surfaces can be verified against it afterwards.
func generatePlans(ctx context.Context, config *Config, sports, teams []catalogEntry, stats *Stats) ([]UserPlan, error) {
	if len(sports) == 0 {
		return nil, fmt.Errorf("catalog returned no sports")
	}

	logger.Get().Info(ctx, "generating click plans",
		logger.Int("numUsers", config.NumUsers),
		logger.Int("clicksPerUser", config.ClicksPerUser))

	plans := make([]UserPlan, config.NumUsers)

	type planResult struct {
		index int
		plan  UserPlan
		err   error
	}

	resultChan := make(chan planResult, config.NumUsers)

	workerCount := minInt(config.Workers, config.NumUsers)
	usersPerWorker := config.NumUsers / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * usersPerWorker
		end := start + usersPerWorker
		if worker == workerCount-1 {
			end = config.NumUsers // Last worker gets remaining users
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- planResult{index: i, err: ctx.Err()}
					return
				default:
					plan := generateSinglePlan(config.ClicksPerUser, sports, teams)
					resultChan <- planResult{index: i, plan: plan, err: nil}
				}
			}
		}(start, end)
	}

	clicks := 0
	for i := 0; i < config.NumUsers; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during plan generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate plan %d: %w", result.index, result.err)
			}
			plans[result.index] = result.plan
			clicks += len(result.plan.Clicks)
		}
	}

	stats.UsersCreated = len(plans)
	stats.ClicksGenerated = clicks
	logger.Get().Info(ctx, "generated click plans", logger.Int("users", len(plans)), logger.Int("clicks", clicks))

	return plans, nil
}

// generateSinglePlan builds the click mix for one synthetic user.
func generateSinglePlan(clicksPerUser int, sports, teams []catalogEntry) UserPlan {
	dominant := sports[getRandomIndex(len(sports))]
	persona, share := pickPersona()

	plan := UserPlan{
		UserID:        uuid.New().String(),
		Persona:       persona,
		DominantSport: dominant.ID,
		Clicks:        make([]Click, 0, clicksPerUser),
	}

	dominantClicks := int(float64(clicksPerUser)*share) + 1
	if dominantClicks > clicksPerUser {
		dominantClicks = clicksPerUser
	}

	for i := 0; i < dominantClicks; i++ {
		plan.Clicks = append(plan.Clicks, Click{Kind: "sport", ID: dominant.ID})
	}

	// Spend the remainder on other sports and on teams of the dominant sport.
	for len(plan.Clicks) < clicksPerUser {
		if persona == "team-fan" || getRandomFloat() < 0.5 {
			if team, ok := pickTeamForSport(teams, dominant.ID); ok {
				plan.Clicks = append(plan.Clicks, Click{Kind: "team", ID: team.ID})
				continue
			}
		}
		other := sports[getRandomIndex(len(sports))]
		plan.Clicks = append(plan.Clicks, Click{Kind: "sport", ID: other.ID})
	}

	return plan
}

// pickPersona selects a click distribution profile.
func pickPersona() (string, float64) {
	n, _ := rand.Int(rand.Reader, big.NewInt(personaDivisor))
	switch n.Int64() {
	case caseDiehard:
		// Nearly all clicks on one sport
		return "diehard", diehardShare
	case caseCasual:
		// Half the clicks on the dominant sport
		return "casual", casualShare
	case caseExplorer:
		// Thin preference, lots of browsing
		return "explorer", explorerShare
	case caseTeamFan:
		// Follows teams more than sports
		return "team-fan", casualShare
	default:
		return "casual", casualShare
	}
}

// pickTeamForSport returns a random team playing the given sport.
func pickTeamForSport(teams []catalogEntry, sportID string) (catalogEntry, bool) {
	candidates := make([]catalogEntry, 0, len(teams))
	for _, team := range teams {
		for _, id := range team.SportIDs {
			if id == sportID {
				candidates = append(candidates, team)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return catalogEntry{}, false
	}
	return candidates[getRandomIndex(len(candidates))], true
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
