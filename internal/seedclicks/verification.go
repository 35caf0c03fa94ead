package seedclicks

import (
	"fmt"
	"log"
)

// verifySurfaces checks each fetched surface against the plan that produced it.
// A user's favorite sports must lead with the sport that received the most
// clicks, since none of the seeded profiles declare explicit interests.
func verifySurfaces(plans []UserPlan, surfaces []homepageResponse, stats *Stats) error {
	log.Println("verifying surfaces...")

	if len(surfaces) == 0 {
		return fmt.Errorf("no surfaces to verify")
	}

	verified := 0
	mismatched := 0

	for i, plan := range plans {
		surface := surfaces[i]
		if surface.UserID == "" { // empty UserID indicates a failed fetch
			continue
		}

		expected := mostClickedSport(plan)
		favorites := surface.Recommendations.FavoriteSports

		if len(favorites) == 0 || favorites[0] != expected {
			mismatched++
			log.Printf("mismatch for %s (%s persona): expected top sport %s, got %v",
				plan.UserID, plan.Persona, expected, favorites)
			continue
		}
		verified++
	}

	stats.UsersVerified = verified
	stats.UsersMismatched = mismatched

	if mismatched > 0 {
		return fmt.Errorf("%d of %d surfaces disagreed with their click plans", mismatched, verified+mismatched)
	}

	log.Printf("verified %d surfaces", verified)
	return nil
}

// mostClickedSport returns the sport id with the highest click count in the
// plan. Ties go to the lexicographically smaller id, matching the service's
// ranking order.
func mostClickedSport(plan UserPlan) string {
	counts := make(map[string]int)
	for _, click := range plan.Clicks {
		if click.Kind == "sport" {
			counts[click.ID]++
		}
	}

	best := ""
	bestCount := -1
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best = id
			bestCount = count
		}
	}
	return best
}
