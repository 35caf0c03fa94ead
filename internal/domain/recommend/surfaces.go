package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/pkg/logger"
	"github.com/okian/altersport/pkg/metrics"
)

// Homepage returns the three homepage sub-results for one user.
func (a *Aggregator) Homepage(ctx context.Context, userID string, limit int) (HomepageResult, error) {
	began := time.Now()
	user, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return HomepageResult{}, err
	}
	neighbors := a.neighbors.Neighbors(ctx, userID, a.neighborK)

	events := gatherEvents(user, neighbors, nil)
	events = append(events, a.liveUpcoming(ctx, user)...)

	res := HomepageResult{
		FavoriteSports:   favoriteSports(user, limit),
		UpcomingEvents:   mergeEvents(events, a.now(), limit),
		RecommendedTeams: a.recommendedTeams(ctx, user, neighbors, limit),
	}
	metrics.RecordRecommendation("homepage", float64(time.Since(began).Milliseconds()))
	return res, nil
}

// Sport returns the sub-results scoped to one sport id.
func (a *Aggregator) Sport(ctx context.Context, userID, sportID string, limit int) (SportResult, error) {
	began := time.Now()
	user, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return SportResult{}, err
	}
	neighbors := a.neighbors.Neighbors(ctx, userID, a.neighborK)

	events := gatherEvents(user, neighbors, func(rec model.EventRecord) bool {
		return rec.SportID == sportID
	})

	res := SportResult{
		Teams:    a.teamsBySport(ctx, user, neighbors, sportID, limit),
		Events:   mergeEvents(events, a.now(), limit),
		Training: trainingBySport(user, neighbors, sportID, limit),
	}
	metrics.RecordRecommendation("sport", float64(time.Since(began).Milliseconds()))
	return res, nil
}

// Events returns the merged match feed for one user.
func (a *Aggregator) Events(ctx context.Context, userID string, limit int) ([]EventItem, error) {
	return a.eventsByType(ctx, userID, model.RecordTypeMatch, "events", limit)
}

// Tournaments returns the merged tournament feed for one user.
func (a *Aggregator) Tournaments(ctx context.Context, userID string, limit int) ([]EventItem, error) {
	return a.eventsByType(ctx, userID, model.RecordTypeTournament, "tournaments", limit)
}

func (a *Aggregator) eventsByType(ctx context.Context, userID, typeTag, surface string, limit int) ([]EventItem, error) {
	began := time.Now()
	user, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	neighbors := a.neighbors.Neighbors(ctx, userID, a.neighborK)

	events := gatherEvents(user, neighbors, func(rec model.EventRecord) bool {
		return typeTagMatches(rec, typeTag)
	})
	merged := mergeEvents(events, a.now(), limit)
	metrics.RecordRecommendation(surface, float64(time.Since(began).Milliseconds()))
	return merged, nil
}

// Favorites returns the user's own declared favorites. Neighbor signals are
// never involved.
func (a *Aggregator) Favorites(ctx context.Context, userID string, limit int) (FavoritesResult, error) {
	began := time.Now()
	user, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return FavoritesResult{}, err
	}

	res := FavoritesResult{
		Sports: favoriteSports(user, limit),
		Teams:  truncateStrings(user.TeamsLiked, limit),
		Events: mergeEvents(gatherEvents(user, nil, nil), a.now(), limit),
	}
	metrics.RecordRecommendation("favorites", float64(time.Since(began).Milliseconds()))
	return res, nil
}

// RealTimeMatches queries the catalog for upcoming matches over an expanding
// window. Profile event history is never consulted. A later, wider stage
// runs only when the previous stage came back empty.
func (a *Aggregator) RealTimeMatches(ctx context.Context, userID string, limit int) ([]MatchItem, error) {
	began := time.Now()
	user, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sports := favoriteSports(user, realtimeSportSeed)
	teams := truncateStrings(user.TeamsLiked, realtimeTeamSeed)

	matches, ok := a.upcoming(ctx, sports, teams, realtimeFullWindow)
	if !ok {
		return []MatchItem{}, nil
	}
	if len(matches) == 0 && len(sports) > 0 {
		if matches, ok = a.upcoming(ctx, sports, nil, realtimeSportOnlyWindow); !ok {
			return []MatchItem{}, nil
		}
	}
	if len(matches) == 0 {
		if matches, ok = a.upcoming(ctx, nil, nil, realtimeOpenWindow); !ok {
			return []MatchItem{}, nil
		}
	}

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]MatchItem, 0, len(matches))
	for _, m := range matches {
		homeName, homeLogo := a.teamDisplay(ctx, m.HomeTeamID)
		awayName, awayLogo := a.teamDisplay(ctx, m.AwayTeamID)
		out = append(out, MatchItem{
			EventID:       m.ID,
			EventType:     model.RecordTypeMatch,
			Date:          m.Date,
			Time:          m.Time,
			SportID:       m.SportID,
			SportName:     a.sportDisplay(ctx, m.SportID),
			HomeTeamID:    m.HomeTeamID,
			AwayTeamID:    m.AwayTeamID,
			HomeTeam:      homeName,
			AwayTeam:      awayName,
			HomeTeamLogo:  homeLogo,
			AwayTeamLogo:  awayLogo,
			LocationID:    m.LocationID,
			IsRecommended: true,
		})
	}
	metrics.RecordRecommendation("realtime", float64(time.Since(began).Milliseconds()))
	return out, nil
}

// upcoming wraps an outer catalog query. Failures are swallowed: the caller
// gets ok=false and serves an empty surface rather than an error.
func (a *Aggregator) upcoming(ctx context.Context, sportIDs, teamIDs []string, days int) ([]catalog.Match, bool) {
	matches, err := a.catalog.QueryUpcomingMatches(ctx, sportIDs, teamIDs, nil, days)
	if err != nil {
		a.log.Warn(ctx, "upcoming-match query failed, serving empty result",
			logger.Int("days_ahead", days), logger.Error(err))
		return nil, false
	}
	return matches, true
}

// liveUpcoming fetches near-term matches seeded by the user's favorite
// sports and liked teams, converting them into event items. Query failure
// contributes nothing; per-match enrichment failure keeps the match.
func (a *Aggregator) liveUpcoming(ctx context.Context, user *model.Profile) []EventItem {
	sports := favoriteSports(user, homepageSportSeed)
	teams := truncateStrings(user.TeamsLiked, homepageTeamSeed)

	matches, err := a.catalog.QueryUpcomingMatches(ctx, sports, teams, nil, homepageLiveWindow)
	if err != nil {
		a.log.Warn(ctx, "live upcoming-events query failed, using history only",
			logger.Error(err))
		return nil
	}

	out := make([]EventItem, 0, len(matches))
	for _, m := range matches {
		homeName, homeLogo := a.teamDisplay(ctx, m.HomeTeamID)
		awayName, awayLogo := a.teamDisplay(ctx, m.AwayTeamID)
		out = append(out, EventItem{
			EventRecord: model.EventRecord{
				EventID:      m.ID,
				EventType:    model.RecordTypeMatch,
				Date:         m.Date,
				Time:         m.Time,
				SportID:      m.SportID,
				HomeTeamID:   m.HomeTeamID,
				AwayTeamID:   m.AwayTeamID,
				HomeTeamName: homeName,
				AwayTeamName: awayName,
				CategoryID:   m.CategoryID,
				LocationID:   m.LocationID,
			},
			HomeTeamLogo: homeLogo,
			AwayTeamLogo: awayLogo,
			FromAPI:      true,
		})
	}
	return out
}

// recommendedTeams ranks teams the neighbors clicked but the user has not
// liked yet, best-clicked first, and enriches the survivors.
func (a *Aggregator) recommendedTeams(ctx context.Context, user *model.Profile, neighbors []*model.Profile, limit int) []TeamItem {
	liked := make(map[string]struct{}, len(user.TeamsLiked))
	for _, t := range user.TeamsLiked {
		liked[t] = struct{}{}
	}

	var candidates []TeamItem
	for _, n := range neighbors {
		for _, teamID := range rankCounts(n.TeamsClicked) {
			if _, own := liked[teamID]; own {
				continue
			}
			candidates = append(candidates, TeamItem{TeamID: teamID, Clicks: n.TeamsClicked[teamID]})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Clicks > candidates[j].Clicks
	})

	seen := make(map[string]struct{}, len(candidates))
	out := make([]TeamItem, 0, capHint(limit))
	for _, c := range candidates {
		if _, dup := seen[c.TeamID]; dup {
			continue
		}
		seen[c.TeamID] = struct{}{}
		c.Name, c.LogoURL = a.teamDisplay(ctx, c.TeamID)
		out = append(out, c)
		if limit >= 0 && len(out) == limit {
			break
		}
	}
	return out
}

// teamsBySport keeps liked teams (own first, then neighbors') that belong
// to the given sport per the catalog. Teams the catalog cannot resolve are
// skipped, since membership is unknowable.
func (a *Aggregator) teamsBySport(ctx context.Context, user *model.Profile, neighbors []*model.Profile, sportID string, limit int) []TeamItem {
	seen := make(map[string]struct{})
	out := make([]TeamItem, 0, capHint(limit))

	consider := func(teamID string) {
		if _, dup := seen[teamID]; dup {
			return
		}
		seen[teamID] = struct{}{}

		team, err := a.catalog.GetTeam(ctx, teamID)
		if err != nil {
			metrics.RecordEnrichmentFailure()
			a.log.Debug(ctx, "skipping unresolvable team", logger.String("team_id", teamID))
			return
		}
		for _, s := range team.SportIDs {
			if s == sportID {
				out = append(out, TeamItem{TeamID: teamID, Name: team.Name, LogoURL: team.LogoURL})
				return
			}
		}
	}

	for _, teamID := range user.TeamsLiked {
		consider(teamID)
		if limit >= 0 && len(out) == limit {
			return out
		}
	}
	for _, n := range neighbors {
		for _, teamID := range n.TeamsLiked {
			consider(teamID)
			if limit >= 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// trainingBySport collects training triples matching the sport, own entries
// first, deduplicated by team.
func trainingBySport(user *model.Profile, neighbors []*model.Profile, sportID string, limit int) []TrainingItem {
	seen := make(map[string]struct{})
	out := make([]TrainingItem, 0, capHint(limit))

	collect := func(p *model.Profile) {
		for i, sport := range p.TrainingSports {
			if sport != sportID || i >= len(p.TrainingTeams) {
				continue
			}
			team := p.TrainingTeams[i]
			if _, dup := seen[team]; dup {
				continue
			}
			seen[team] = struct{}{}
			item := TrainingItem{Team: team}
			if i < len(p.TrainingLocations) {
				item.Location = p.TrainingLocations[i]
			}
			out = append(out, item)
		}
	}

	collect(user)
	for _, n := range neighbors {
		collect(n)
	}

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
