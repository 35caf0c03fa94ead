// Package feature converts user profiles into fixed-length numeric vectors
// for similarity scoring.
package feature

import (
	"hash/fnv"
	"strings"

	"github.com/okian/altersport/internal/domain/model"
)

// Location hash projection constants. The scalar must be identical across
// runs, so the hash is FNV-1a rather than a per-process seeded primitive.
const (
	locationHashBuckets = 1000
	locationHashScale   = 10000
)

// Vectorizer encodes profiles over a fixed sport catalog. The catalog order
// fixes the field order of every vector, so one Vectorizer must be shared by
// all profiles compared against each other.
type Vectorizer struct {
	sportIndex map[string]int
	sportCount int
}

// NewVectorizer creates a vectorizer over the given sport catalog ids,
// in declaration order.
func NewVectorizer(sportIDs []string) *Vectorizer {
	index := make(map[string]int, len(sportIDs))
	for i, id := range sportIDs {
		index[id] = i
	}
	return &Vectorizer{
		sportIndex: index,
		sportCount: len(sportIDs),
	}
}

// Dimension returns the vector length: 2 scalar features, five sport blocks,
// one event-type block, one liked-events-per-sport block, and one
// liked-events-per-type block.
func (v *Vectorizer) Dimension() int {
	e := len(model.EventCategories)
	return 2 + 5*v.sportCount + e + v.sportCount + e
}

// Vectorize encodes one profile. Sports and categories not present in the
// catalog are silently ignored.
func (v *Vectorizer) Vectorize(p *model.Profile) []float64 {
	s := v.sportCount
	e := len(model.EventCategories)

	vec := make([]float64, 0, v.Dimension())
	vec = append(vec, float64(model.AgeBandIndex(p.Age)))
	vec = append(vec, encodeLocation(p.City, p.District))

	interests := make([]float64, s)
	for _, sportID := range p.SportInterests {
		if i, ok := v.sportIndex[sportID]; ok {
			interests[i] = 1
		}
	}
	vec = append(vec, interests...)
	vec = append(vec, v.countBlock(p.SportsLikedCount)...)
	vec = append(vec, v.countBlock(p.TeamLikedSport)...)
	vec = append(vec, v.countBlock(p.PlayerLikedSports)...)
	vec = append(vec, v.countBlock(p.TrainingSportsLiked)...)

	priority := make([]float64, e)
	for _, tag := range p.EventTypePriority {
		if i, ok := model.EventCategoryIndex(tag); ok {
			priority[i] = 1
		}
	}
	vec = append(vec, priority...)

	likedBySport := make([]float64, s)
	likedByType := make([]float64, e)
	for _, rec := range p.EventsLiked {
		if i, ok := v.sportIndex[rec.SportID]; ok {
			likedBySport[i]++
		}
		if i, ok := model.EventCategoryIndex(rec.EventType); ok {
			likedByType[i]++
		}
	}
	vec = append(vec, likedBySport...)
	vec = append(vec, likedByType...)

	return vec
}

func (v *Vectorizer) countBlock(counts map[string]int) []float64 {
	block := make([]float64, v.sportCount)
	for sportID, count := range counts {
		if i, ok := v.sportIndex[sportID]; ok {
			block[i] = float64(count)
		}
	}
	return block
}

// encodeLocation derives a bounded, deterministic scalar from the city and
// district pair. Identical tuples always produce the identical scalar; the
// value is purely discriminative and never identity-revealing.
func encodeLocation(city, district string) float64 {
	location := strings.ToLower(city) + "_" + strings.ToLower(district)
	h := fnv.New64a()
	_, _ = h.Write([]byte(location))
	bucket := h.Sum64()%locationHashBuckets + 1
	return float64(bucket) / locationHashScale
}
