// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/altersport/internal/adapters/catalog"
	"github.com/okian/altersport/internal/adapters/repository"
	"github.com/okian/altersport/internal/domain/feature"
	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/internal/domain/recommend"
	"github.com/okian/altersport/internal/domain/similarity"
	"github.com/okian/altersport/pkg/logger"
)

const (
	defaultStorePath = "user_clicks.json"
	defaultNeighbors = 3
	defaultMaxLimit  = 50
)

// Service wires the profile store, the similarity engine and the
// recommendation aggregator behind one mutex. The store and the engine are
// not safe for concurrent use on their own; every entry point below takes
// the lock for its full duration, which also preserves read-after-write
// freshness of the similarity matrix.
type Service struct {
	mu sync.Mutex

	// Core components
	store      repository.Store
	catalog    catalog.Client
	vectorizer *feature.Vectorizer
	engine     *similarity.Engine
	aggregator *recommend.Aggregator

	// Configuration
	storePath     string
	neighborCount int
	maxLimit      int

	// matrixVersion is the store version the engine was last rebuilt at.
	matrixVersion uint64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStorePath sets the profile database file location.
func WithStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storePath = path
		}
	}
}

// WithCatalog sets the catalog client used for enrichment and live queries.
func WithCatalog(c catalog.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithNeighborCount sets how many similar users feed each surface.
func WithNeighborCount(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.neighborCount = k
		}
	}
}

// WithMaxLimit caps the per-request result size.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storePath:     defaultStorePath,
		neighborCount: defaultNeighbors,
		maxLimit:      defaultMaxLimit,
		engine:        similarity.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the profile store and prepares the recommendation pipeline.
// The sport catalog is fetched once here: the feature layout depends on the
// current set of sport ids, so an unreachable catalog fails startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.catalog == nil {
		return fmt.Errorf("catalog client is required")
	}

	s.logger.Info(ctx, "starting recommendation service...")

	store, err := repository.NewJSONStore(s.storePath, s.catalog)
	if err != nil {
		return fmt.Errorf("opening profile store: %w", err)
	}
	s.store = store

	sports, err := s.catalog.ListSports(ctx)
	if err != nil {
		return fmt.Errorf("fetching sport catalog: %w", err)
	}
	sportIDs := make([]string, len(sports))
	for i, sp := range sports {
		sportIDs[i] = sp.ID
	}
	s.vectorizer = feature.NewVectorizer(sportIDs)

	s.aggregator = recommend.New(s.store, neighborView{s}, s.catalog,
		recommend.WithNeighborCount(s.neighborCount),
		recommend.WithLogger(s.logger.Named("recommend")),
	)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.String("storePath", s.storePath),
		logger.Int("profiles", s.store.Count(ctx)),
		logger.Int("sports", len(sportIDs)),
		logger.Int("neighborCount", s.neighborCount),
	)

	return nil
}

// Stop shuts the service down. The store flushes on every mutation, so
// there is nothing volatile to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// ensureMatrixLocked rebuilds the similarity matrix when any profile changed
// since the last rebuild. Callers must hold s.mu.
func (s *Service) ensureMatrixLocked(ctx context.Context) {
	version := s.store.Version()
	if version == s.matrixVersion && s.engine.Size() == s.store.Count(ctx) {
		return
	}

	began := time.Now()
	profiles := s.store.Profiles(ctx)
	ids := make([]string, len(profiles))
	vectors := make([][]float64, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
		vectors[i] = s.vectorizer.Vectorize(p)
	}
	s.engine.Rebuild(ids, vectors)
	s.matrixVersion = version

	s.logger.Debug(ctx, "similarity matrix rebuilt",
		logger.Int("profiles", len(ids)),
		logger.Int("dimension", s.vectorizer.Dimension()),
		logger.Duration("took", time.Since(began)),
	)
}

// neighborView exposes the engine's top-K as resolved profiles. It is only
// ever called from aggregator surfaces, under the service mutex.
type neighborView struct {
	s *Service
}

func (v neighborView) Neighbors(ctx context.Context, userID string, k int) []*model.Profile {
	v.s.ensureMatrixLocked(ctx)

	ranked := v.s.engine.TopK(userID, k)
	out := make([]*model.Profile, 0, len(ranked))
	for _, n := range ranked {
		p, err := v.s.store.Get(ctx, n.UserID)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// clampLimit applies the default and the configured ceiling.
func (s *Service) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}
