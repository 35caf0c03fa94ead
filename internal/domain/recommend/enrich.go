package recommend

import (
	"context"

	"github.com/okian/altersport/pkg/metrics"
)

// Display fallbacks used when a catalog lookup fails mid-enrichment.
const (
	unknownTeam  = "Unknown Team"
	unknownSport = "Unknown Sport"
)

// teamDisplay resolves a team's name and logo. A blank id or a failed
// lookup yields the unknown-team fallback and no logo; the composite result
// is never aborted.
func (a *Aggregator) teamDisplay(ctx context.Context, teamID string) (name, logoURL string) {
	if teamID == "" {
		return unknownTeam, ""
	}
	team, err := a.catalog.GetTeam(ctx, teamID)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return unknownTeam, ""
	}
	if team.Name == "" {
		return unknownTeam, team.LogoURL
	}
	return team.Name, team.LogoURL
}

// sportDisplay resolves a sport's name with the unknown-sport fallback.
func (a *Aggregator) sportDisplay(ctx context.Context, sportID string) string {
	if sportID == "" {
		return unknownSport
	}
	sport, err := a.catalog.GetSport(ctx, sportID)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return unknownSport
	}
	if sport.Name == "" {
		return unknownSport
	}
	return sport.Name
}
