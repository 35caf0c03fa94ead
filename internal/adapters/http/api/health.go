// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/altersport/pkg/metrics"
)

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleMetrics handles GET /healthz requests by serving Prometheus
// metrics from the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

// HandleHealth handles GET /api/health requests with a JSON liveness
// report including the size of the sport catalog.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	report := map[string]any{"status": "healthy"}
	if sports, err := h.deps.ListSports(r.Context()); err == nil {
		report["sports_count"] = len(sports)
	} else {
		report["status"] = "degraded"
	}
	writeJSON(w, http.StatusOK, report)
}
