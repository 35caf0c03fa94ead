// Package metrics provides Prometheus metrics for the AlterSport recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Click tracking
	clicksTracked   *prometheus.CounterVec
	trackingErrors  *prometheus.CounterVec
	profilesTotal   prometheus.Gauge
	profilesCreated prometheus.Counter

	// Profile store durability
	storeFlushDuration prometheus.Histogram
	storeFlushErrors   prometheus.Counter

	// Similarity engine
	similarityRebuilds        prometheus.Counter
	similarityRebuildDuration prometheus.Histogram
	similarityMatrixSize      prometheus.Gauge

	// Recommendation surfaces
	recommendationsServed  *prometheus.CounterVec
	recommendationDuration *prometheus.HistogramVec

	// Catalog client
	catalogRequests    *prometheus.CounterVec
	catalogLatency     prometheus.Histogram
	catalogFailures    *prometheus.CounterVec
	enrichmentFailures prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "altersport",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.clicksTracked = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "clicks_tracked_total",
			Help:      "Total number of click interactions recorded, by entity kind",
		},
		[]string{"kind"},
	)

	m.trackingErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tracking_errors_total",
			Help:      "Total number of failed click tracking operations, by entity kind",
		},
		[]string{"kind"},
	)

	m.profilesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_total",
		Help:      "Current number of user profiles in the store",
	})

	m.profilesCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_created_total",
		Help:      "Total number of profiles created via read-through access",
	})

	m.storeFlushDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_flush_duration_milliseconds",
		Help:      "Histogram of full-store flush latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeFlushErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_flush_errors_total",
		Help:      "Total number of failed full-store flushes",
	})

	m.similarityRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_rebuilds_total",
		Help:      "Total number of full similarity matrix rebuilds",
	})

	m.similarityRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_rebuild_duration_milliseconds",
		Help:      "Histogram of similarity matrix rebuild latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.similarityMatrixSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_matrix_size",
		Help:      "Number of user rows in the current similarity matrix",
	})

	m.recommendationsServed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_served_total",
			Help:      "Total number of recommendation responses, by surface",
		},
		[]string{"surface"},
	)

	m.recommendationDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendation_duration_milliseconds",
			Help:      "Recommendation assembly latency in milliseconds, by surface",
			Buckets:   m.histogramBuckets,
		},
		[]string{"surface"},
	)

	m.catalogRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "catalog_requests_total",
			Help:      "Total number of catalog service requests, by operation",
		},
		[]string{"op"},
	)

	m.catalogLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_request_duration_milliseconds",
		Help:      "Catalog service request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "catalog_failures_total",
			Help:      "Total number of failed catalog service requests, by operation",
		},
		[]string{"op"},
	)

	m.enrichmentFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "enrichment_failures_total",
		Help:      "Total number of per-entity enrichment lookups degraded to defaults",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers operating on the global manager.

// RecordClickTracked increments the click counter for an entity kind
// (sport, team, event, tournament).
func RecordClickTracked(kind string) {
	globalManager.clicksTracked.WithLabelValues(kind).Inc()
}

// RecordTrackingError increments the tracking error counter for an entity kind.
func RecordTrackingError(kind string) {
	globalManager.trackingErrors.WithLabelValues(kind).Inc()
}

// UpdateProfilesTotal sets the current profile count gauge.
func UpdateProfilesTotal(count int) {
	globalManager.profilesTotal.Set(float64(count))
}

// RecordProfileCreated increments the created-profiles counter.
func RecordProfileCreated() {
	globalManager.profilesCreated.Inc()
}

// RecordStoreFlush records one full-store flush latency observation.
func RecordStoreFlush(latencyMs float64) {
	globalManager.storeFlushDuration.Observe(latencyMs)
}

// RecordStoreFlushError increments the flush error counter.
func RecordStoreFlushError() {
	globalManager.storeFlushErrors.Inc()
}

// RecordSimilarityRebuild records one full matrix rebuild with its latency
// and resulting row count.
func RecordSimilarityRebuild(latencyMs float64, rows int) {
	globalManager.similarityRebuilds.Inc()
	globalManager.similarityRebuildDuration.Observe(latencyMs)
	globalManager.similarityMatrixSize.Set(float64(rows))
}

// RecordRecommendation records one served recommendation response.
func RecordRecommendation(surface string, latencyMs float64) {
	globalManager.recommendationsServed.WithLabelValues(surface).Inc()
	globalManager.recommendationDuration.WithLabelValues(surface).Observe(latencyMs)
}

// RecordCatalogRequest records one catalog request with its latency.
func RecordCatalogRequest(op string, latencyMs float64) {
	globalManager.catalogRequests.WithLabelValues(op).Inc()
	globalManager.catalogLatency.Observe(latencyMs)
}

// RecordCatalogFailure increments the catalog failure counter for an operation.
func RecordCatalogFailure(op string) {
	globalManager.catalogFailures.WithLabelValues(op).Inc()
}

// RecordEnrichmentFailure increments the degraded-enrichment counter.
func RecordEnrichmentFailure() {
	globalManager.enrichmentFailures.Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records one GC pause observation in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
