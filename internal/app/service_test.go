package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/adapters/repository"
	"github.com/okian/altersport/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubCatalog struct {
	sports     []catalog.Sport
	teams      map[string]catalog.Team
	matches    map[string]catalog.Match
	upcoming   []catalog.Match
	listErr    error
	upcomingAt time.Time
}

func (c *stubCatalog) ListSports(context.Context) ([]catalog.Sport, error) {
	return c.sports, c.listErr
}
func (c *stubCatalog) ListTeams(context.Context) ([]catalog.Team, error)             { return nil, nil }
func (c *stubCatalog) ListLocations(context.Context) ([]catalog.Location, error)     { return nil, nil }
func (c *stubCatalog) ListTournaments(context.Context) ([]catalog.Tournament, error) { return nil, nil }

func (c *stubCatalog) GetSport(_ context.Context, id string) (catalog.Sport, error) {
	for _, s := range c.sports {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Sport{}, catalog.ErrNotFound
}

func (c *stubCatalog) GetTeam(_ context.Context, id string) (catalog.Team, error) {
	t, ok := c.teams[id]
	if !ok {
		return catalog.Team{}, catalog.ErrNotFound
	}
	return t, nil
}

func (c *stubCatalog) GetMatch(_ context.Context, id string) (catalog.Match, error) {
	m, ok := c.matches[id]
	if !ok {
		return catalog.Match{}, catalog.ErrNotFound
	}
	return m, nil
}

func (c *stubCatalog) GetTournament(_ context.Context, _ string) (catalog.Tournament, error) {
	return catalog.Tournament{}, catalog.ErrNotFound
}

func (c *stubCatalog) QueryUpcomingMatches(context.Context, []string, []string, []string, int) ([]catalog.Match, error) {
	return c.upcoming, nil
}

func (c *stubCatalog) QueryEventsByDateRange(context.Context, time.Time, time.Time, []string, []string, []string) ([]catalog.Match, error) {
	return nil, nil
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		sports: []catalog.Sport{
			{ID: "s1", Name: "Football"},
			{ID: "s2", Name: "Chess"},
		},
		teams: map[string]catalog.Team{
			"t1": {ID: "t1", Name: "Alpha", SportIDs: []string{"s1"}},
		},
		matches: map[string]catalog.Match{
			"m1": {ID: "m1", Date: time.Now().AddDate(0, 0, 3), SportID: "s1", HomeTeamID: "t1"},
		},
	}
}

func startedService(t *testing.T, cat catalog.Client) *Service {
	t.Helper()
	svc := New(
		WithCatalog(cat),
		WithStorePath(filepath.Join(t.TempDir(), "profiles.json")),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()

		Convey("it refuses to start without a catalog client", func() {
			svc := New(WithStorePath(filepath.Join(t.TempDir(), "p.json")))
			So(svc.Start(ctx), ShouldNotBeNil)
		})

		Convey("it fails to start when the sport catalog is unreachable", func() {
			cat := newStubCatalog()
			cat.listErr = errors.New("catalog down")
			svc := New(WithCatalog(cat), WithStorePath(filepath.Join(t.TempDir(), "p.json")))
			So(svc.Start(ctx), ShouldNotBeNil)
		})

		Convey("start is idempotent and stop is safe", func() {
			svc := startedService(t, newStubCatalog())
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
			svc.Stop()
		})
	})
}

func TestServiceProfiles(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t, newStubCatalog())

		Convey("a blank user id mints a fresh one", func() {
			p, err := svc.InitializeUser(ctx, "", nil)
			So(err, ShouldBeNil)
			So(p.UserID, ShouldNotBeEmpty)

			again, err := svc.InitializeUser(ctx, "", nil)
			So(err, ShouldBeNil)
			So(again.UserID, ShouldNotEqual, p.UserID)
		})

		Convey("unknown profiles are not found on direct lookup", func() {
			_, err := svc.GetProfile(ctx, "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("updates replace only the named fields", func() {
			_, err := svc.InitializeUser(ctx, "u1", nil)
			So(err, ShouldBeNil)

			name := "Ana"
			p, err := svc.UpdateProfile(ctx, "u1", repository.Update{UserName: &name})
			So(err, ShouldBeNil)
			So(p.UserName, ShouldEqual, "Ana")
			So(p.Age, ShouldEqual, "DEFAULT")
		})
	})
}

func TestServiceRecommendations(t *testing.T) {
	Convey("Given a started service with two users", t, func() {
		ctx := context.Background()
		svc := startedService(t, newStubCatalog())

		_, err := svc.InitializeUser(ctx, "u1", nil)
		So(err, ShouldBeNil)
		_, err = svc.InitializeUser(ctx, "u2", nil)
		So(err, ShouldBeNil)

		Convey("a write is visible to the next recommendation read", func() {
			So(svc.TrackSportClick(ctx, "u1", "s1"), ShouldBeNil)

			res, err := svc.HomepageRecommendations(ctx, "u1", 10)
			So(err, ShouldBeNil)
			So(res.FavoriteSports, ShouldResemble, []string{"s1"})
		})

		Convey("event clicks feed the user stats summary", func() {
			_, err := svc.TrackEventClick(ctx, "u1", "m1")
			So(err, ShouldBeNil)

			stats, err := svc.UserStats(ctx, "u1")
			So(err, ShouldBeNil)
			So(stats.TotalEventsClicked, ShouldEqual, 1)
		})

		Convey("neighbor signals surface through the homepage", func() {
			So(svc.TrackTeamClick(ctx, "u2", "t1"), ShouldBeNil)

			res, err := svc.HomepageRecommendations(ctx, "u1", 10)
			So(err, ShouldBeNil)
			So(res.RecommendedTeams, ShouldNotBeEmpty)
			So(res.RecommendedTeams[0].TeamID, ShouldEqual, "t1")
		})

		Convey("surfaces clamp oversized limits", func() {
			svc.maxLimit = 2
			So(svc.clampLimit(100, 5), ShouldEqual, 2)
			So(svc.clampLimit(0, 5), ShouldEqual, 2)
			So(svc.clampLimit(1, 5), ShouldEqual, 1)
		})

		Convey("GetStats reports the profile population", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["totalProfiles"], ShouldEqual, 2)
		})
	})
}

func TestServiceConcurrentAccess(t *testing.T) {
	Convey("Given a started service under concurrent traffic", t, func() {
		ctx := context.Background()
		svc := startedService(t, newStubCatalog())
		defer svc.Stop()

		_, err := svc.InitializeUser(ctx, "u1", nil)
		So(err, ShouldBeNil)

		Convey("profile reads are detached from later writes", func() {
			p, err := svc.GetProfile(ctx, "u1")
			So(err, ShouldBeNil)

			So(svc.TrackSportClick(ctx, "u1", "s1"), ShouldBeNil)
			So(svc.TrackSportClick(ctx, "u1", "s2"), ShouldBeNil)

			So(p.SportsClicked, ShouldBeEmpty)
			So(p.SportInterests, ShouldBeEmpty)
		})

		Convey("event snapshots are detached from the stored record", func() {
			rec, err := svc.TrackEventClick(ctx, "u1", "m1")
			So(err, ShouldBeNil)
			So(rec.EventID, ShouldEqual, "m1")

			p, err := svc.GetProfile(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(p.EventsLiked), ShouldEqual, 1)
			So(p.EventsLiked[0].EventID, ShouldEqual, "m1")
		})

		Convey("reads can be encoded while clicks land on the same user", func() {
			const iterations = 200

			var wg sync.WaitGroup
			wg.Add(2)

			go func() {
				defer wg.Done()
				for i := 0; i < iterations; i++ {
					_ = svc.TrackSportClick(ctx, "u1", "s1")
					_ = svc.TrackTeamClick(ctx, "u1", "t1")
				}
			}()

			var encodeErr error
			go func() {
				defer wg.Done()
				for i := 0; i < iterations; i++ {
					p, err := svc.GetProfile(ctx, "u1")
					if err != nil {
						encodeErr = err
						return
					}
					if _, err := json.Marshal(p); err != nil {
						encodeErr = err
						return
					}
				}
			}()

			wg.Wait()
			So(encodeErr, ShouldBeNil)
		})
	})
}
