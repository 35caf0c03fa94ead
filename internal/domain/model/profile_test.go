package model_test

import (
	"testing"

	"github.com/okian/altersport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewProfile(t *testing.T) {
	Convey("Given a freshly created profile", t, func() {
		p := model.NewProfile("user-1")

		Convey("Then it should carry the documented defaults", func() {
			So(p.UserID, ShouldEqual, "user-1")
			So(p.Age, ShouldEqual, model.DefaultAge)
			So(p.SportInterests, ShouldBeEmpty)
			So(p.SportsLikedCount, ShouldBeEmpty)
			So(p.TeamsLiked, ShouldBeEmpty)
			So(p.EventsLiked, ShouldBeEmpty)
			So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament"})
		})
	})
}

func TestProfileMutation(t *testing.T) {
	Convey("Given a profile", t, func() {
		p := model.NewProfile("user-1")

		Convey("When liking the same sport twice", func() {
			p.LikeSport("sport-football")
			p.LikeSport("sport-football")

			Convey("Then the counter should reach two with a single interest entry", func() {
				So(p.SportsLikedCount["sport-football"], ShouldEqual, 2)
				So(p.SportInterests, ShouldResemble, []string{"sport-football"})
			})
		})

		Convey("When adding the same team twice", func() {
			p.AddTeam("team-a")
			p.AddTeam("team-a")

			Convey("Then the liked set should hold one entry", func() {
				So(p.TeamsLiked, ShouldResemble, []string{"team-a"})
				So(p.HasTeam("team-a"), ShouldBeTrue)
				So(p.HasTeam("team-b"), ShouldBeFalse)
			})
		})

		Convey("When adding a priority tag that differs only in casing", func() {
			p.AddEventTypePriority("TOURNAMENT")

			Convey("Then the list should be unchanged", func() {
				So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament"})
			})
		})

		Convey("When adding a new priority tag", func() {
			p.AddEventTypePriority("league")

			Convey("Then it should be appended", func() {
				So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament", "league"})
			})
		})
	})
}

func TestAgeBandIndex(t *testing.T) {
	Convey("Given the fixed age band enumeration", t, func() {
		Convey("Then known bands should map to their ordinal index", func() {
			So(model.AgeBandIndex("PRESCHOOL"), ShouldEqual, 0)
			So(model.AgeBandIndex("primary_school"), ShouldEqual, 1)
			So(model.AgeBandIndex("Juniors"), ShouldEqual, 2)
			So(model.AgeBandIndex("ADULTS"), ShouldEqual, 3)
			So(model.AgeBandIndex("veterans"), ShouldEqual, 4)
		})

		Convey("And unrecognized descriptors should map to band zero", func() {
			So(model.AgeBandIndex(""), ShouldEqual, 0)
			So(model.AgeBandIndex("25"), ShouldEqual, 0)
			So(model.AgeBandIndex("DEFAULT"), ShouldEqual, 0)
		})
	})
}

func TestEventCategoryIndex(t *testing.T) {
	Convey("Given the fixed event category enumeration", t, func() {
		Convey("Then known tags should resolve regardless of casing", func() {
			idx, ok := model.EventCategoryIndex("match")
			So(ok, ShouldBeTrue)
			So(idx, ShouldEqual, 0)

			idx, ok = model.EventCategoryIndex("TOURNAMENT")
			So(ok, ShouldBeTrue)
			So(idx, ShouldEqual, 4)
		})

		Convey("And unknown tags should not resolve", func() {
			_, ok := model.EventCategoryIndex("concert")
			So(ok, ShouldBeFalse)
		})
	})
}
