package similarity

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCosine(t *testing.T) {
	Convey("Given the cosine function", t, func() {
		Convey("identical vectors score 1", func() {
			v := []float64{1, 2, 3}
			So(Cosine(v, v), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("orthogonal vectors score 0", func() {
			So(Cosine([]float64{1, 0}, []float64{0, 1}), ShouldEqual, 0)
		})

		Convey("a zero vector scores 0 against anything", func() {
			So(Cosine([]float64{0, 0}, []float64{1, 1}), ShouldEqual, 0)
			So(Cosine([]float64{0, 0}, []float64{0, 0}), ShouldEqual, 0)
		})

		Convey("scaling does not change the score", func() {
			a := []float64{1, 2, 3}
			b := []float64{2, 4, 6}
			So(Cosine(a, b), ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}

func TestEngine(t *testing.T) {
	Convey("Given a rebuilt engine", t, func() {
		ids := []string{"u1", "u2", "u3", "u4"}
		vectors := [][]float64{
			{1, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 0},
		}
		e := New()
		e.Rebuild(ids, vectors)

		Convey("the matrix is symmetric", func() {
			for _, a := range ids {
				for _, b := range ids {
					So(e.Score(a, b), ShouldEqual, e.Score(b, a))
				}
			}
		})

		Convey("self-similarity is 1 for non-zero vectors", func() {
			So(e.Score("u1", "u1"), ShouldAlmostEqual, 1.0, 1e-9)
			So(e.Score("u3", "u3"), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("the zero-vector user scores 0 everywhere", func() {
			So(e.Score("u4", "u4"), ShouldEqual, 0)
			So(e.Score("u4", "u1"), ShouldEqual, 0)
		})

		Convey("TopK excludes the user itself", func() {
			for _, n := range e.TopK("u1", 3) {
				So(n.UserID, ShouldNotEqual, "u1")
			}
		})

		Convey("TopK ranks by descending similarity", func() {
			got := e.TopK("u1", 3)
			So(got, ShouldHaveLength, 3)
			So(got[0].UserID, ShouldEqual, "u2")
			So(got[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			for i := 1; i < len(got); i++ {
				So(got[i-1].Score, ShouldBeGreaterThanOrEqualTo, got[i].Score)
			}
		})

		Convey("ties break by insertion order", func() {
			// u3 and u4 both score 0 against u2; u3 was inserted first.
			got := e.TopK("u2", 3)
			So(got[1].UserID, ShouldEqual, "u3")
			So(got[2].UserID, ShouldEqual, "u4")
		})

		Convey("k truncates the result", func() {
			So(e.TopK("u1", 1), ShouldHaveLength, 1)
			So(e.TopK("u1", 0), ShouldBeEmpty)
		})

		Convey("unknown users yield an empty result", func() {
			So(e.TopK("ghost", 3), ShouldBeEmpty)
			So(e.Score("ghost", "u1"), ShouldEqual, 0)
		})

		Convey("Size reports the population", func() {
			So(e.Size(), ShouldEqual, 4)
		})
	})
}
