// Package app assembles the services shared by the API server and the worker
// from environment configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/database"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/provider/resilience"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// Options selects the optional backends. Empty fields disable them.
type Options struct {
	// RefdataPath is a YAML catalog. Empty selects the built-in catalog.
	RefdataPath string
	// UseDatabase stores carrier profiles in PostgreSQL instead of memory.
	UseDatabase bool
	// RedisURL enables the recommendation cache.
	RedisURL string
	// ClassifierEndpoint selects the remote model server over the in-process
	// frequency classifier.
	ClassifierEndpoint string
	// ProfileSeed seeds the synthetic carrier profiles.
	ProfileSeed uint64
}

// OptionsFromEnv reads REFDATA_PATH, DB_HOST, REDIS_URL, CLASSIFIER_ENDPOINT
// and PROFILE_SEED.
func OptionsFromEnv() Options {
	seed, _ := strconv.ParseUint(os.Getenv("PROFILE_SEED"), 10, 64)
	return Options{
		RefdataPath:        os.Getenv("REFDATA_PATH"),
		UseDatabase:        database.Enabled(),
		RedisURL:           os.Getenv("REDIS_URL"),
		ClassifierEndpoint: os.Getenv("CLASSIFIER_ENDPOINT"),
		ProfileSeed:        seed,
	}
}

// Stack holds the assembled services.
type Stack struct {
	Catalog     *refdata.Catalog
	Planner     *planner.Planner
	Synthesizer *synth.Synthesizer
	Carriers    *carrier.Service
	Generator   *carrier.Generator
	Classifier  classifier.Classifier
	Registry    *resilience.Registry

	pool  *pgxpool.Pool
	redis *redis.Client
}

// Build assembles the services. Profiles are generated from the catalog when
// the store is empty. Call Close when done.
func Build(ctx context.Context, opts Options, log zerolog.Logger) (*Stack, error) {
	catalog, err := refdata.Load(opts.RefdataPath)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	s := &Stack{
		Catalog:   catalog,
		Planner:   planner.New(catalog),
		Generator: carrier.NewGenerator(carrier.GeneratorConfig{Seed: opts.ProfileSeed}),
		Registry:  resilience.NewRegistry(),
	}

	s.Synthesizer, err = synth.New(synth.Config{
		Planner:   s.Planner,
		Locations: catalog.LocationNames(),
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	var repo carrier.Repository = carrier.NewInMemoryRepository(nil)
	if opts.UseDatabase {
		dbConfig := database.ConfigFromEnv()
		s.pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, s.pool); err != nil {
			s.Close()
			return nil, err
		}
		repo = carrier.NewPostgresRepository(s.pool)
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	}

	var cache carrier.RankCache
	if opts.RedisURL != "" {
		redisOpts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		s.redis = redis.NewClient(redisOpts)
		cache = carrier.NewRedisCache(carrier.RedisCacheConfig{Client: s.redis})
		log.Info().Str("addr", redisOpts.Addr).Msg("recommendation cache enabled")
	}

	s.Carriers = carrier.NewService(carrier.ServiceConfig{
		Repository: repo,
		Catalog:    catalog,
		Cache:      cache,
		Logger:     log,
	})

	routes, err := s.Carriers.Routes(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("list stored routes: %w", err)
	}
	if len(routes) == 0 {
		if _, err := s.Carriers.RefreshProfiles(ctx, s.Generator); err != nil {
			s.Close()
			return nil, fmt.Errorf("seed carrier profiles: %w", err)
		}
	}

	if opts.ClassifierEndpoint != "" {
		cfg := classifier.DefaultRemoteClientConfig("model-server")
		cfg.Registry = s.Registry
		s.Classifier = classifier.NewRemoteClassifier(classifier.RemoteConfig{
			Endpoint: opts.ClassifierEndpoint,
			Client:   resilience.NewClient(cfg),
		})
		log.Info().Str("endpoint", opts.ClassifierEndpoint).Msg("remote classifier enabled")
	} else {
		s.Classifier = classifier.NewFrequencyClassifier()
	}

	return s, nil
}

// Checks returns the dependency checks of the configured backends, keyed by
// subsystem name.
func (s *Stack) Checks() map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error)
	if s.pool != nil {
		checks["postgres"] = s.pool.Ping
	}
	if s.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Close releases the database pool and the redis client.
func (s *Stack) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return errors.Join(errs...)
}
