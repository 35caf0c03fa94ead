// Package similarity computes pairwise cosine similarity across all user
// feature vectors and answers top-K neighbor queries.
package similarity

import (
	"math"
	"sort"
	"time"

	"github.com/okian/altersport/pkg/metrics"
)

// Neighbor is one ranked similarity result.
type Neighbor struct {
	UserID string
	Score  float64
}

// Engine holds the full pairwise similarity matrix for one rebuild.
// It is rebuilt from scratch; the cost is O(n^2 * d) over n profiles of
// dimension d, accepted for the expected population size.
type Engine struct {
	index  map[string]int
	ids    []string
	matrix [][]float64
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{index: map[string]int{}}
}

// Rebuild replaces the matrix from the given user ids and their vectors, in
// profile insertion order. The two slices are parallel; the index of each id
// is its tie-breaking rank in TopK.
func (e *Engine) Rebuild(ids []string, vectors [][]float64) {
	began := time.Now()

	e.ids = append([]string{}, ids...)
	e.index = make(map[string]int, len(ids))
	for i, id := range ids {
		e.index[id] = i
	}

	n := len(vectors)
	e.matrix = make([][]float64, n)
	for i := range e.matrix {
		e.matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		e.matrix[i][i] = Cosine(vectors[i], vectors[i])
		for j := i + 1; j < n; j++ {
			score := Cosine(vectors[i], vectors[j])
			e.matrix[i][j] = score
			e.matrix[j][i] = score
		}
	}

	metrics.RecordSimilarityRebuild(float64(time.Since(began).Milliseconds()), n)
}

// Size returns the number of users in the current matrix.
func (e *Engine) Size() int {
	return len(e.ids)
}

// TopK returns up to k other users ranked by descending similarity to
// userID. Self is always excluded; ties break by ascending insertion index.
// Unknown ids yield an empty result.
func (e *Engine) TopK(userID string, k int) []Neighbor {
	row, ok := e.index[userID]
	if !ok || k <= 0 {
		return nil
	}

	neighbors := make([]Neighbor, 0, len(e.ids)-1)
	for i, id := range e.ids {
		if i == row {
			continue
		}
		neighbors = append(neighbors, Neighbor{UserID: id, Score: e.matrix[row][i]})
	}

	// Stable sort keeps the ascending-insertion-index tie-break, because the
	// candidates were appended in insertion order.
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Score returns the similarity between two users, or 0 when either is
// unknown.
func (e *Engine) Score(a, b string) float64 {
	i, ok := e.index[a]
	if !ok {
		return 0
	}
	j, ok := e.index[b]
	if !ok {
		return 0
	}
	return e.matrix[i][j]
}

// Cosine returns the cosine similarity of two equal-length vectors. The
// similarity of a zero vector with anything is 0.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
