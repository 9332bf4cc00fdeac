// Package main provides the entrypoint for the Logistics Net API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/api"
	"github.com/logisticsnet/logisticsnet/internal/api/handler"
	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/app"
	"github.com/logisticsnet/logisticsnet/internal/auth"
	"github.com/logisticsnet/logisticsnet/internal/telemetry"
	"github.com/logisticsnet/logisticsnet/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "logisticsnet-api"

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Logistics Net API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryConfig := telemetry.ConfigFromEnv(serviceName, Version)
	tp, err := telemetry.Init(ctx, telemetryConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()
	if telemetryConfig.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryConfig.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	stack, err := app.Build(ctx, app.OptionsFromEnv(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}
	defer stack.Close() //nolint:errcheck

	// Token validation is optional; without a key the admin routes answer 401.
	var tokens middleware.TokenValidator
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		jwtService, err := auth.NewJWTService(auth.JWTConfig{
			SigningKey: key,
			Issuer:     getEnvOrDefault("JWT_ISSUER", "https://api.logisticsnet.in"),
			Audience:   getEnvOrDefault("JWT_AUDIENCE", "logisticsnet-api"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize JWT service")
		}
		tokens = jwtService
	} else {
		log.Warn().Msg("JWT_SIGNING_KEY not set - admin and status endpoints are disabled")
	}

	// Job publishing is optional; without a topic job requests answer 503.
	var publisher handler.JobPublisher
	if topic := os.Getenv("PUBSUB_TOPIC"); topic != "" {
		pub, err := worker.NewPublisher(ctx, worker.PublisherConfig{
			ProjectID: os.Getenv("PUBSUB_PROJECT_ID"),
			Topic:     topic,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize job publisher")
		}
		defer pub.Close() //nolint:errcheck
		publisher = pub
		log.Info().Str("topic", topic).Msg("job publisher initialized")
	}

	checks := make(map[string]handler.CheckFunc)
	for name, check := range stack.Checks() {
		checks[name] = check
	}

	requireTLS, _ := strconv.ParseBool(os.Getenv("REQUIRE_TLS"))

	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		RequireTLS:  requireTLS,
		Tokens:      tokens,
		Carriers:    stack.Carriers,
		Planner:     stack.Planner,
		Catalog:     stack.Catalog,
		Synthesizer: stack.Synthesizer,
		Publisher:   publisher,
		Registry:    stack.Registry,
		Checks:      checks,
	})

	// Synchronous dataset synthesis can take tens of seconds.
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
