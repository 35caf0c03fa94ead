package catalog_test

import (
	"testing"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 18, 0, 0, 0, time.UTC)
}

func TestFilterMatches(t *testing.T) {
	Convey("Given a date-filtered base set of matches", t, func() {
		base := []catalog.Match{
			{ID: "m1", Date: day(1), SportID: "football", HomeTeamID: "t1", AwayTeamID: "t2", LocationID: "l1"},
			{ID: "m2", Date: day(2), SportID: "football", HomeTeamID: "t3", AwayTeamID: "t4", LocationID: "l2"},
			{ID: "m3", Date: day(3), SportID: "rugby", HomeTeamID: "t5", AwayTeamID: "t6", LocationID: "l1"},
		}

		Convey("When no filters are supplied", func() {
			result := catalog.FilterMatches(base, nil, nil, nil)

			Convey("Then the base set is returned unchanged", func() {
				So(result, ShouldResemble, base)
			})
		})

		Convey("When the sport filter matches some records", func() {
			result := catalog.FilterMatches(base, []string{"rugby"}, nil, nil)

			Convey("Then only matching records remain", func() {
				So(result, ShouldHaveLength, 1)
				So(result[0].ID, ShouldEqual, "m3")
			})
		})

		Convey("When the sport filter would eliminate everything", func() {
			result := catalog.FilterMatches(base, []string{"chess"}, nil, nil)

			Convey("Then the sport stage is rolled back", func() {
				So(result, ShouldResemble, base)
			})
		})

		Convey("When the team filter empties an already sport-filtered set", func() {
			result := catalog.FilterMatches(base, []string{"football"}, []string{"t5"}, nil)

			Convey("Then the team stage rolls back but sport filtering is kept", func() {
				So(result, ShouldHaveLength, 2)
				So(result[0].ID, ShouldEqual, "m1")
				So(result[1].ID, ShouldEqual, "m2")
			})
		})

		Convey("When the team filter matches either side of a match", func() {
			result := catalog.FilterMatches(base, nil, []string{"t4"}, nil)

			Convey("Then the match with that away team remains", func() {
				So(result, ShouldHaveLength, 1)
				So(result[0].ID, ShouldEqual, "m2")
			})
		})

		Convey("When the location filter empties the set", func() {
			result := catalog.FilterMatches(base, []string{"football"}, []string{"t1"}, []string{"l9"})

			Convey("Then only the location stage rolls back", func() {
				So(result, ShouldHaveLength, 1)
				So(result[0].ID, ShouldEqual, "m1")
			})
		})

		Convey("When every stage applies cleanly", func() {
			result := catalog.FilterMatches(base, []string{"football"}, []string{"t1", "t3"}, []string{"l2"})

			Convey("Then the fully filtered set is returned", func() {
				So(result, ShouldHaveLength, 1)
				So(result[0].ID, ShouldEqual, "m2")
			})
		})

		Convey("When the base set is empty", func() {
			result := catalog.FilterMatches(nil, []string{"football"}, nil, nil)

			Convey("Then the result is legitimately empty", func() {
				So(result, ShouldBeEmpty)
			})
		})
	})
}
