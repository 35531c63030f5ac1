// Package api provides the HTTP API for VoltRoute.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/api/handler"
	"github.com/voltroute/voltroute/internal/api/middleware"
	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Catalog     *catalog.Service
	Trips       *trip.Service
	Registry    *fallback.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "voltroute-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(serviceName, cfg.Version, cfg.BuildTime, cfg.Registry)
	catalogHandler := handler.NewCatalogHandler(cfg.Catalog)
	tripHandler := handler.NewTripHandler(cfg.Trips)

	// Create rate limit middleware for different endpoint categories
	planRateLimit := middleware.RateLimitByIP(middleware.PlanRateLimit)       // 30 req/min
	catalogRateLimit := middleware.RateLimitByIP(middleware.CatalogRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
			r.Get("/info", opsHandler.ServiceInfo)
		})

		// Catalog endpoints - served from the process cache after first call
		r.Route("/vehicles", func(r chi.Router) {
			r.Use(catalogRateLimit)
			r.Get("/", catalogHandler.ListVehicles)
		})
		r.Route("/cities", func(r chi.Router) {
			r.Use(catalogRateLimit)
			r.Get("/", catalogHandler.ListCities)
		})

		// Trip planning - fans out to upstream providers, strict rate limiting
		r.With(planRateLimit, middleware.RequireJSON).Post("/trips:plan", tripHandler.PlanTrip)
	})

	return r
}
