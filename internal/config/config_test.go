package config_test

import (
	"context"
	"testing"

	"github.com/okian/altersport/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8888")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DatabasePath, convey.ShouldEqual, "user_clicks.json")
			convey.So(cfg.CatalogBaseURL, convey.ShouldNotBeEmpty)
			convey.So(cfg.CatalogTimeoutMS, convey.ShouldEqual, 5_000)
			convey.So(cfg.NeighborCount, convey.ShouldEqual, 3)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
		})
	})
}
