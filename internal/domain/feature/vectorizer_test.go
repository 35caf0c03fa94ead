package feature_test

import (
	"testing"
	"time"

	"github.com/okian/altersport/internal/domain/feature"
	"github.com/okian/altersport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVectorizer(t *testing.T) {
	Convey("Given a vectorizer over a three-sport catalog", t, func() {
		v := feature.NewVectorizer([]string{"football", "rugby", "chess"})

		Convey("Then the dimension follows 2 + 5S + E + S + E", func() {
			// S=3, E=6: 2 + 15 + 6 + 3 + 6 = 32
			So(v.Dimension(), ShouldEqual, 32)
		})

		Convey("When vectorizing an empty profile", func() {
			p := model.NewProfile("u1")
			p.EventTypePriority = nil
			vec := v.Vectorize(p)

			Convey("Then only the location scalar is non-zero", func() {
				So(vec, ShouldHaveLength, 32)
				So(vec[0], ShouldEqual, 0)
				So(vec[1], ShouldBeGreaterThan, 0)
				for _, x := range vec[2:] {
					So(x, ShouldEqual, 0)
				}
			})
		})

		Convey("When vectorizing a profile with signals", func() {
			p := model.NewProfile("u1")
			p.Age = "ADULTS"
			p.City = "zagreb"
			p.District = "centar"
			p.SportInterests = []string{"rugby", "unknown-sport"}
			p.SportsLikedCount = map[string]int{"football": 4, "unknown-sport": 9}
			p.TeamLikedSport = map[string]int{"football": 2}
			p.PlayerLikedSports = map[string]int{"chess": 1}
			p.TrainingSportsLiked = map[string]int{"rugby": 3}
			p.EventTypePriority = []string{"match", "tournament", "concert"}
			p.EventsLiked = []model.EventRecord{
				{EventID: "m1", EventType: "MATCH", SportID: "football", Date: time.Now()},
				{EventID: "cup1", EventType: "TOURNAMENT", SportID: "rugby", Date: time.Now()},
				{EventID: "x", EventType: "PARADE", SportID: "curling", Date: time.Now()},
			}
			vec := v.Vectorize(p)

			Convey("Then the age band is the ordinal index", func() {
				So(vec[0], ShouldEqual, 3)
			})

			Convey("And the sport blocks are laid out in catalog order", func() {
				So(vec[2:5], ShouldResemble, []float64{0, 1, 0})  // interests
				So(vec[5:8], ShouldResemble, []float64{4, 0, 0})  // liked counts
				So(vec[8:11], ShouldResemble, []float64{2, 0, 0}) // team liked
				So(vec[11:14], ShouldResemble, []float64{0, 0, 1}) // player liked
				So(vec[14:17], ShouldResemble, []float64{0, 3, 0}) // training liked
			})

			Convey("And the event-type priority one-hot skips unknown tags", func() {
				So(vec[17:23], ShouldResemble, []float64{1, 0, 0, 0, 1, 0})
			})

			Convey("And liked events are counted per sport and per type", func() {
				So(vec[23:26], ShouldResemble, []float64{1, 1, 0})
				So(vec[26:32], ShouldResemble, []float64{1, 0, 0, 0, 1, 0})
			})
		})

		Convey("When vectorizing the same location twice", func() {
			a := model.NewProfile("a")
			a.City = "Zagreb"
			a.District = "Centar"
			b := model.NewProfile("b")
			b.City = "zagreb"
			b.District = "centar"

			Convey("Then the location scalar is identical and bounded", func() {
				la := v.Vectorize(a)[1]
				lb := v.Vectorize(b)[1]
				So(la, ShouldEqual, lb)
				So(la, ShouldBeGreaterThan, 0)
				So(la, ShouldBeLessThanOrEqualTo, 0.1)
			})
		})

		Convey("When vectorizing different locations", func() {
			a := model.NewProfile("a")
			a.City = "zagreb"
			a.District = "centar"
			b := model.NewProfile("b")
			b.City = "split"
			b.District = "bacvice"

			Convey("Then the scalars differ", func() {
				So(v.Vectorize(a)[1], ShouldNotEqual, v.Vectorize(b)[1])
			})
		})
	})
}
