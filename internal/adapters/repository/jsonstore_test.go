package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeCatalog serves fixed records and can fail selectively per kind.
type fakeCatalog struct {
	sports      map[string]catalog.Sport
	teams       map[string]catalog.Team
	matches     map[string]catalog.Match
	tournaments map[string]catalog.Tournament
	sportsDown  bool
}

func (f *fakeCatalog) GetSport(_ context.Context, id string) (catalog.Sport, error) {
	if f.sportsDown {
		return catalog.Sport{}, catalog.ErrUnavailable
	}
	if s, ok := f.sports[id]; ok {
		return s, nil
	}
	return catalog.Sport{}, fmt.Errorf("sport %s: %w", id, catalog.ErrNotFound)
}

func (f *fakeCatalog) GetTeam(_ context.Context, id string) (catalog.Team, error) {
	if t, ok := f.teams[id]; ok {
		return t, nil
	}
	return catalog.Team{}, fmt.Errorf("team %s: %w", id, catalog.ErrNotFound)
}

func (f *fakeCatalog) GetMatch(_ context.Context, id string) (catalog.Match, error) {
	if m, ok := f.matches[id]; ok {
		return m, nil
	}
	return catalog.Match{}, fmt.Errorf("match %s: %w", id, catalog.ErrNotFound)
}

func (f *fakeCatalog) GetTournament(_ context.Context, id string) (catalog.Tournament, error) {
	if t, ok := f.tournaments[id]; ok {
		return t, nil
	}
	return catalog.Tournament{}, fmt.Errorf("tournament %s: %w", id, catalog.ErrNotFound)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		sports: map[string]catalog.Sport{
			"football": {ID: "football", Name: "Football"},
			"rugby":    {ID: "rugby", Name: "Rugby"},
		},
		teams: map[string]catalog.Team{
			"t1": {ID: "t1", Name: "Lions", SportIDs: []string{"football"}},
			"t2": {ID: "t2", Name: "Tigers", SportIDs: []string{"football"}},
		},
		matches: map[string]catalog.Match{
			"m1": {
				ID:         "m1",
				Date:       time.Date(2026, time.September, 10, 18, 0, 0, 0, time.UTC),
				Time:       "18:00",
				SportID:    "football",
				HomeTeamID: "t1",
				AwayTeamID: "t2",
				LocationID: "l1",
			},
		},
		tournaments: map[string]catalog.Tournament{
			"cup1": {
				ID:        "cup1",
				Name:      "Spring Cup",
				StartDate: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
				SportID:   "rugby",
				MatchIDs:  []string{"m9"},
			},
		},
	}
}

func newTestStore(t *testing.T, cat repository.Catalog) (*repository.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_clicks.json")
	store, err := repository.NewJSONStore(path, cat)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, path
}

func TestGetOrCreate(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store, path := newTestStore(t, newFakeCatalog())
		ctx := context.Background()

		Convey("When accessing a new user without seed data", func() {
			p, err := store.GetOrCreate(ctx, "u1", nil)
			So(err, ShouldBeNil)

			Convey("Then the profile carries the documented defaults", func() {
				So(p.SportInterests, ShouldBeEmpty)
				So(p.SportsLikedCount, ShouldBeEmpty)
				So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament"})
			})

			Convey("And a second call is an idempotent no-op", func() {
				again, err := store.GetOrCreate(ctx, "u1", &repository.Seed{UserName: "ignored"})
				So(err, ShouldBeNil)
				So(again, ShouldEqual, p)
				So(again.UserName, ShouldBeEmpty)
			})

			Convey("And the store file exists on disk", func() {
				_, err := os.Stat(path)
				So(err, ShouldBeNil)
			})
		})

		Convey("When accessing a new user with seed data", func() {
			p, err := store.GetOrCreate(ctx, "u2", &repository.Seed{
				UserName:       "Ana",
				City:           "Zagreb",
				District:       "Tresnjevka",
				SportInterests: []string{"football", "rugby"},
			})
			So(err, ShouldBeNil)

			Convey("Then seed fields overlay the defaults", func() {
				So(p.UserName, ShouldEqual, "Ana")
				So(p.Age, ShouldEqual, "25")
				So(p.City, ShouldEqual, "zagreb")
				So(p.District, ShouldEqual, "tresnjevka")
				So(p.SportInterests, ShouldResemble, []string{"football", "rugby"})
				So(p.SportsLikedCount["football"], ShouldEqual, 1)
				So(p.SportsLikedCount["rugby"], ShouldEqual, 1)
			})
		})
	})
}

func TestReplace(t *testing.T) {
	Convey("Given a store with one user", t, func() {
		store, _ := newTestStore(t, newFakeCatalog())
		ctx := context.Background()
		_, err := store.GetOrCreate(ctx, "u1", nil)
		So(err, ShouldBeNil)

		Convey("When replacing named fields", func() {
			name := "Marko"
			age := "31"
			city := "Split"
			p, err := store.Replace(ctx, "u1", repository.Update{
				UserName: &name,
				Age:      &age,
				City:     &city,
			})

			Convey("Then only those fields change", func() {
				So(err, ShouldBeNil)
				So(p.UserName, ShouldEqual, "Marko")
				So(p.Age, ShouldEqual, "31")
				So(p.City, ShouldEqual, "split")
				So(p.District, ShouldBeEmpty)
				So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament"})
			})
		})

		Convey("When the age is not an integer", func() {
			age := "old"
			_, err := store.Replace(ctx, "u1", repository.Update{Age: &age})

			Convey("Then ErrInvalidAge is reported", func() {
				So(errors.Is(err, repository.ErrInvalidAge), ShouldBeTrue)
			})
		})

		Convey("When the user is unknown", func() {
			name := "Nobody"
			_, err := store.Replace(ctx, "ghost", repository.Update{UserName: &name})

			Convey("Then ErrNotFound is reported", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestClickTracking(t *testing.T) {
	Convey("Given a store and a healthy catalog", t, func() {
		cat := newFakeCatalog()
		store, _ := newTestStore(t, cat)
		ctx := context.Background()

		Convey("When a user clicks the same sport twice", func() {
			So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)
			So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)

			p, err := store.Get(ctx, "u1")
			So(err, ShouldBeNil)

			Convey("Then counters increase and the interest list holds one entry", func() {
				So(p.SportsLikedCount["football"], ShouldEqual, 2)
				So(p.SportsClicked["football"], ShouldEqual, 2)
				So(p.SportInterests, ShouldResemble, []string{"football"})
			})
		})

		Convey("When a user clicks a team", func() {
			So(store.RecordTeamClick(ctx, "u1", "t1"), ShouldBeNil)

			p, err := store.Get(ctx, "u1")
			So(err, ShouldBeNil)

			Convey("Then team and per-sport counters are updated", func() {
				So(p.TeamsLiked, ShouldResemble, []string{"t1"})
				So(p.TeamsClicked["t1"], ShouldEqual, 1)
				So(p.TeamLikedSport["football"], ShouldEqual, 1)
				So(p.SportsLikedCount["football"], ShouldEqual, 1)
			})
		})

		Convey("When a user clicks an unknown team", func() {
			err := store.RecordTeamClick(ctx, "u1", "ghost-team")

			Convey("Then the direct lookup failure propagates", func() {
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a user clicks an event", func() {
			rec, err := store.RecordEventClick(ctx, "u1", "m1")
			So(err, ShouldBeNil)

			p, getErr := store.Get(ctx, "u1")
			So(getErr, ShouldBeNil)

			Convey("Then an immutable snapshot is appended", func() {
				So(rec.EventType, ShouldEqual, "MATCH")
				So(rec.SportName, ShouldEqual, "Football")
				So(rec.HomeTeamName, ShouldEqual, "Lions")
				So(rec.AwayTeamName, ShouldEqual, "Tigers")
				So(p.EventsLiked, ShouldHaveLength, 1)
			})

			Convey("And every derived counter is updated", func() {
				So(p.EventsClicked["m1"], ShouldEqual, 1)
				So(p.SportsLikedCount["football"], ShouldEqual, 1)
				So(p.TeamsLiked, ShouldResemble, []string{"t1", "t2"})
				So(p.TeamLikedSport["football"], ShouldEqual, 2)
			})
		})

		Convey("When the sport lookup fails during event enrichment", func() {
			cat.sportsDown = true
			rec, err := store.RecordEventClick(ctx, "u1", "m1")

			Convey("Then the click still succeeds with a degraded sport name", func() {
				So(err, ShouldBeNil)
				So(rec.SportName, ShouldBeEmpty)
				So(rec.HomeTeamName, ShouldEqual, "Lions")
			})
		})

		Convey("When a user clicks a tournament", func() {
			rec, err := store.RecordTournamentClick(ctx, "u1", "cup1")
			So(err, ShouldBeNil)

			p, getErr := store.Get(ctx, "u1")
			So(getErr, ShouldBeNil)

			Convey("Then the snapshot carries the tournament fields", func() {
				So(rec.EventType, ShouldEqual, "TOURNAMENT")
				So(rec.TournamentName, ShouldEqual, "Spring Cup")
				So(rec.Date, ShouldResemble, rec.StartDate)
				So(rec.MatchIDs, ShouldResemble, []string{"m9"})
			})

			Convey("And the priority list gains the tournament tag at most once", func() {
				So(p.EventTypePriority, ShouldResemble, []string{"match", "tournament"})
				So(p.SportsLikedCount["rugby"], ShouldEqual, 1)
			})
		})
	})
}

func TestDurability(t *testing.T) {
	Convey("Given a store with tracked interactions", t, func() {
		cat := newFakeCatalog()
		path := filepath.Join(t.TempDir(), "user_clicks.json")
		store, err := repository.NewJSONStore(path, cat)
		So(err, ShouldBeNil)

		ctx := context.Background()
		So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)
		So(store.RecordSportClick(ctx, "u2", "rugby"), ShouldBeNil)
		_, err = store.RecordEventClick(ctx, "u1", "m1")
		So(err, ShouldBeNil)

		Convey("When the store is reopened from disk", func() {
			reopened, err := repository.NewJSONStore(path, cat)
			So(err, ShouldBeNil)

			Convey("Then all profiles survive in insertion order", func() {
				So(reopened.Count(ctx), ShouldEqual, 2)
				profiles := reopened.Profiles(ctx)
				So(profiles[0].UserID, ShouldEqual, "u1")
				So(profiles[1].UserID, ShouldEqual, "u2")
				So(profiles[0].SportsLikedCount["football"], ShouldEqual, 2)
				So(profiles[0].EventsLiked, ShouldHaveLength, 1)
				So(profiles[0].EventsLiked[0].SportName, ShouldEqual, "Football")
			})
		})

		Convey("When the backing file is corrupt", func() {
			So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
			_, err := repository.NewJSONStore(path, cat)

			Convey("Then opening fails fast with ErrCorruptStore", func() {
				So(errors.Is(err, repository.ErrCorruptStore), ShouldBeTrue)
			})
		})
	})
}

func TestUserStats(t *testing.T) {
	Convey("Given a user with interaction history", t, func() {
		cat := newFakeCatalog()
		store, _ := newTestStore(t, cat)
		ctx := context.Background()

		So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)
		So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)
		So(store.RecordSportClick(ctx, "u1", "rugby"), ShouldBeNil)
		So(store.RecordTeamClick(ctx, "u1", "t1"), ShouldBeNil)
		_, err := store.RecordEventClick(ctx, "u1", "m1")
		So(err, ShouldBeNil)

		Convey("When fetching the stats summary", func() {
			stats, err := store.UserStats(ctx, "u1")
			So(err, ShouldBeNil)

			Convey("Then favorites are ranked by click count with names resolved", func() {
				So(stats.TotalEventsClicked, ShouldEqual, 1)
				So(stats.FavoriteSports[0].SportID, ShouldEqual, "football")
				So(stats.FavoriteSports[0].Name, ShouldEqual, "Football")
				So(stats.FavoriteTeams[0].Name, ShouldEqual, "Lions")
				So(stats.RecentEvents, ShouldHaveLength, 1)
			})
		})

		Convey("When fetching stats for an unknown user", func() {
			_, err := store.UserStats(ctx, "ghost")

			Convey("Then ErrNotFound is reported", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestVersion(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store, _ := newTestStore(t, newFakeCatalog())
		ctx := context.Background()
		before := store.Version()

		Convey("When a mutation happens", func() {
			So(store.RecordSportClick(ctx, "u1", "football"), ShouldBeNil)

			Convey("Then the version increases", func() {
				So(store.Version(), ShouldBeGreaterThan, before)
			})
		})
	})
}
