// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8888".
	Addr string `koanf:"addr"`

	// DatabasePath locates the JSON profile store on disk.
	DatabasePath string `koanf:"database_path"`

	// CatalogBaseURL points at the external catalog service.
	CatalogBaseURL string `koanf:"catalog_base_url"`

	// CatalogToken is the bearer token for catalog requests, if any.
	CatalogToken string `koanf:"catalog_token"`

	// CatalogTimeoutMS bounds each catalog request.
	CatalogTimeoutMS int `koanf:"catalog_timeout_ms"`

	// NeighborCount sets how many similar users feed each surface.
	NeighborCount int `koanf:"neighbor_count"`

	// MaxLimit caps the per-request result size on every surface.
	MaxLimit int `koanf:"max_limit"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:         "info",
		Addr:             ":8888",
		DatabasePath:     "user_clicks.json",
		CatalogBaseURL:   "http://localhost:9090",
		CatalogTimeoutMS: 5_000,
		NeighborCount:    3,
		MaxLimit:         50,
	}
	return c
}
