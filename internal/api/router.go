// Package api provides the HTTP API for the traffic advisory service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/trafficadvisor/trafficadvisor/internal/api/handler"
	"github.com/trafficadvisor/trafficadvisor/internal/api/middleware"
	"github.com/trafficadvisor/trafficadvisor/internal/predict"
	"github.com/trafficadvisor/trafficadvisor/internal/route"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Planner     *route.Planner
	Index       *route.Index
	Predictor   *predict.Predictor
	ModelPath   string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "trafficadvisor-api"
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
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Predictor.Trained)
	advisoryHandler := handler.NewAdvisoryHandler(cfg.Planner, cfg.Index, cfg.Predictor)
	predictorHandler := handler.NewPredictorHandler(handler.PredictorHandlerConfig{
		Predictor: cfg.Predictor,
		Locations: cfg.Index.Names(),
		ModelPath: cfg.ModelPath,
		Logger:    cfg.Logger,
	})
	sustainabilityHandler := handler.NewSustainabilityHandler()

	// Rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Map metadata - standard rate limiting
		r.With(standardRateLimit).Get("/locations", advisoryHandler.ListLocations)

		// Route planning - optimization sweeps are expensive
		r.With(expensiveRateLimit).Post("/routes:optimize", advisoryHandler.Optimize)
		r.With(standardRateLimit).Post("/routes:evaluate", advisoryHandler.Evaluate)
		r.With(standardRateLimit).Get("/routes/alternatives", advisoryHandler.Alternatives)

		// Model lifecycle - training is expensive
		r.With(expensiveRateLimit).Post("/predictor:train", predictorHandler.Train)
		r.With(standardRateLimit).Post("/predictor:predict", predictorHandler.Predict)

		// Sustainability comparison
		r.Route("/sustainability", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Post("/compare", sustainabilityHandler.Compare)
			r.Post("/annual", sustainabilityHandler.Annual)
		})
	})

	// Prometheus scrape endpoint
	r.Method("GET", "/metrics", promhttp.Handler())

	return r
}
