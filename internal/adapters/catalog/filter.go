package catalog

// Soft-filter fallback over a date-filtered base set of matches.
//
// Filters apply in the order sport -> team -> location. A stage whose filter
// would eliminate every remaining match is skipped and the pre-stage set is
// kept instead. Only an empty base set produces an empty final result.

// FilterMatches applies the soft-filter cascade to base. Nil or empty filter
// slices skip their stage entirely.
func FilterMatches(base []Match, sportIDs, teamIDs, locationIDs []string) []Match {
	result := base

	if len(sportIDs) > 0 {
		bySport := make([]Match, 0, len(result))
		want := toSet(sportIDs)
		for _, m := range result {
			if m.SportID != "" && want[m.SportID] {
				bySport = append(bySport, m)
			}
		}
		if len(bySport) > 0 {
			result = bySport
		}
	}

	if len(teamIDs) > 0 {
		byTeam := make([]Match, 0, len(result))
		want := toSet(teamIDs)
		for _, m := range result {
			if want[m.HomeTeamID] || want[m.AwayTeamID] {
				byTeam = append(byTeam, m)
			}
		}
		if len(byTeam) > 0 {
			result = byTeam
		}
	}

	if len(locationIDs) > 0 {
		byLocation := make([]Match, 0, len(result))
		want := toSet(locationIDs)
		for _, m := range result {
			if m.LocationID != "" && want[m.LocationID] {
				byLocation = append(byLocation, m)
			}
		}
		if len(byLocation) > 0 {
			result = byLocation
		}
	}

	return result
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
