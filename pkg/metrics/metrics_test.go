package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("altersport_test"),
			WithSubsystem("recommender"),
		)

		Convey("Then all metrics should be registered", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Counters without observations are not gathered; gauges are.
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given the global manager", t, func() {
		Convey("When recording observations through the package helpers", func() {
			So(func() {
				RecordClickTracked("sport")
				RecordTrackingError("event")
				UpdateProfilesTotal(3)
				RecordProfileCreated()
				RecordStoreFlush(1.2)
				RecordStoreFlushError()
				RecordSimilarityRebuild(4.5, 10)
				RecordRecommendation("homepage", 12.0)
				RecordCatalogRequest("list_sports", 8.0)
				RecordCatalogFailure("get_team")
				RecordEnrichmentFailure()
				RecordHTTPRequest("homepage", "GET", "200")
				RecordHTTPRequestDuration("homepage", "GET", "200", 15.0)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
