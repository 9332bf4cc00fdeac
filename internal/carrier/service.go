package carrier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

const tracerName = "github.com/logisticsnet/logisticsnet/internal/carrier"

// ServiceConfig holds configuration for the carrier service.
type ServiceConfig struct {
	Repository Repository
	Catalog    *refdata.Catalog
	Cache      RankCache // optional
	Logger     zerolog.Logger
	// CacheTimeout bounds each cache call so a slow cache never stalls ranking (default: 200ms).
	CacheTimeout time.Duration
}

// Service ranks carriers over stored profiles.
type Service struct {
	repo         Repository
	catalog      *refdata.Catalog
	engine       *Engine
	cache        RankCache
	logger       zerolog.Logger
	cacheTimeout time.Duration
}

// NewService creates a new carrier service.
func NewService(cfg ServiceConfig) *Service {
	cacheTimeout := cfg.CacheTimeout
	if cacheTimeout == 0 {
		cacheTimeout = 200 * time.Millisecond
	}

	return &Service{
		repo:         cfg.Repository,
		catalog:      cfg.Catalog,
		engine:       NewEngine(cfg.Catalog),
		cache:        cfg.Cache,
		logger:       cfg.Logger,
		cacheTimeout: cacheTimeout,
	}
}

// Recommend ranks the carriers of the query route.
// Returns ErrNoRouteData when the route has no profiles.
func (s *Service) Recommend(ctx context.Context, q Query) (*Recommendation, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "carrier.Recommend")
	defer span.End()

	priorities := make([]string, len(q.Priorities))
	for i, p := range q.Priorities {
		priorities[i] = string(p)
	}
	span.SetAttributes(
		attribute.String("route.origin", q.Origin),
		attribute.String("route.destination", q.Destination),
		attribute.String("cargo.fragility", string(q.Fragility)),
		attribute.String("carrier.priorities", strings.Join(priorities, ",")),
	)

	key := CacheKey(q)
	if rec, ok := s.getCached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return rec, nil
	}

	profiles, err := s.repo.ListByRoute(ctx, q.Origin, q.Destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list profiles")
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	rec, err := s.engine.Recommend(profiles, q)
	if err != nil {
		if !errors.Is(err, ErrNoRouteData) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rank")
		}
		return nil, err
	}

	s.setCached(ctx, key, rec)

	s.logger.Debug().
		Str("route", q.Route()).
		Str("top_choice", rec.TopChoice.Name).
		Int("candidates", len(rec.Ranking)).
		Msg("ranked carriers")

	return rec, nil
}

// Carrier returns the reference details of a carrier.
// Returns refdata.ErrMissingReferenceData when the name is unknown.
func (s *Service) Carrier(_ context.Context, name string) (refdata.Carrier, error) {
	return s.catalog.Carrier(name)
}

// Carriers returns every carrier in catalog order.
func (s *Service) Carriers(_ context.Context) []refdata.Carrier {
	return s.catalog.Carriers()
}

// Routes returns the routes that currently have profiles.
func (s *Service) Routes(ctx context.Context) ([]refdata.RouteKey, error) {
	return s.repo.Routes(ctx)
}

// RefreshProfiles regenerates every profile from the catalog, replaces the
// stored set and drops cached rankings. Returns the number of profiles stored.
func (s *Service) RefreshProfiles(ctx context.Context, gen *Generator) (int, error) {
	profiles := gen.Generate(s.catalog)
	if err := s.repo.ReplaceAll(ctx, profiles); err != nil {
		return 0, fmt.Errorf("replace profiles: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to flush recommendation cache")
		}
	}

	s.logger.Info().Int("profiles", len(profiles)).Msg("carrier profiles refreshed")
	return len(profiles), nil
}

func (s *Service) getCached(ctx context.Context, key string) (*Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	rec, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("recommendation cache read failed")
		return nil, false
	}
	return rec, ok
}

func (s *Service) setCached(ctx context.Context, key string, rec *Recommendation) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, key, rec); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("recommendation cache write failed")
	}
}
