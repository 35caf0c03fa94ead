package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/altersport/internal/domain/model"
)

// mergeEvents applies the shared event merge pattern: deduplicate by event
// id keeping the first occurrence, drop anything not strictly after now,
// sort ascending by date, truncate to limit. Input order matters: own
// signals are passed before neighbor signals so they win the dedupe.
func mergeEvents(items []EventItem, now time.Time, limit int) []EventItem {
	seen := make(map[string]struct{}, len(items))
	merged := make([]EventItem, 0, len(items))
	for _, it := range items {
		if it.EventID == "" {
			continue
		}
		if _, dup := seen[it.EventID]; dup {
			continue
		}
		seen[it.EventID] = struct{}{}
		if !it.Date.After(now) {
			continue
		}
		merged = append(merged, it)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	return truncateEvents(merged, limit)
}

func truncateEvents(items []EventItem, limit int) []EventItem {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// gatherEvents collects events_liked from the user followed by each
// neighbor, optionally filtered by a predicate.
func gatherEvents(user *model.Profile, neighbors []*model.Profile, keep func(model.EventRecord) bool) []EventItem {
	var out []EventItem
	appendFrom := func(p *model.Profile) {
		for _, rec := range p.EventsLiked {
			if keep != nil && !keep(rec) {
				continue
			}
			out = append(out, EventItem{EventRecord: rec})
		}
	}
	appendFrom(user)
	for _, n := range neighbors {
		appendFrom(n)
	}
	return out
}

// typeTagMatches compares snapshot type tags case-insensitively, so the
// stored "MATCH"/"TOURNAMENT" tags match the lowercase feed names.
func typeTagMatches(rec model.EventRecord, tag string) bool {
	return strings.EqualFold(rec.EventType, tag)
}

// favoriteSports returns the user's favorite sport ids: declared interests
// when any exist, otherwise the liked-count ranking (count descending, id
// ascending on ties).
func favoriteSports(p *model.Profile, limit int) []string {
	if len(p.SportInterests) > 0 {
		return truncateStrings(p.SportInterests, limit)
	}
	return truncateStrings(rankCounts(p.SportsLikedCount), limit)
}

// rankCounts orders counter-map keys by count descending, breaking ties by
// ascending key for determinism.
func rankCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// capHint turns a limit into an allocation capacity. Negative limits mean
// unlimited and must not reach make.
func capHint(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}

func truncateStrings(s []string, limit int) []string {
	if limit >= 0 && len(s) > limit {
		s = s[:limit]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
