// Package api provides the HTTP API for Logistics Net.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/api/handler"
	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/auth"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/provider/resilience"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	RequireTLS  bool

	// Tokens validates bearer tokens on admin and status routes. When nil,
	// those routes answer 401.
	Tokens middleware.TokenValidator

	Carriers    handler.CarrierService
	Planner     *planner.Planner
	Catalog     *refdata.Catalog
	Synthesizer *synth.Synthesizer
	Publisher   handler.JobPublisher
	Registry    *resilience.Registry
	Checks      map[string]handler.CheckFunc
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "logisticsnet-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Checks:    cfg.Checks,
		Registry:  cfg.Registry,
	})
	carrierHandler := handler.NewCarrierHandler(cfg.Carriers, cfg.Logger)
	routeHandler := handler.NewRouteHandler(cfg.Planner, cfg.Catalog, cfg.Logger)
	adminHandler := handler.NewAdminHandler(handler.AdminConfig{
		Synthesizer: cfg.Synthesizer,
		Carriers:    cfg.Carriers,
		Publisher:   cfg.Publisher,
		Logger:      cfg.Logger,
	})

	authMiddleware := middleware.Auth(cfg.Tokens)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public except status)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(authMiddleware, middleware.RequireRole(auth.RoleOperator)).Get("/status", opsHandler.SystemStatus)
		})

		// Ranking and planning are the expensive public endpoints.
		r.With(expensiveRateLimit, middleware.RequireJSON).Post("/recommendations", carrierHandler.Recommend)
		r.With(expensiveRateLimit, middleware.RequireJSON).Post("/routes:plan", routeHandler.PlanRoute)

		// Reference data - standard rate limiting
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/carriers", carrierHandler.ListCarriers)
			r.Get("/carriers/{carrierName}", carrierHandler.GetCarrier)
			r.Get("/routes", carrierHandler.ListRoutes)
			r.Get("/locations", routeHandler.ListLocations)
		})

		// Admin endpoints (admin role) - subject-based rate limiting
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Use(middleware.RateLimitBySubject(middleware.AdminRateLimit)) // 10 req/min per subject

			r.With(middleware.RequireJSON).Post("/datasets/intracity", adminHandler.IntracityDataset)
			r.Post("/datasets/carriers", adminHandler.CarrierDataset)
			r.With(middleware.RequireJSON).Post("/jobs", adminHandler.EnqueueJob)
		})
	})

	return r
}
