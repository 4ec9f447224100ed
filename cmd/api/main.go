// Package main provides the entrypoint for the traffic advisory API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/trafficadvisor/trafficadvisor/internal/api"
	"github.com/trafficadvisor/trafficadvisor/internal/api/middleware"
	"github.com/trafficadvisor/trafficadvisor/internal/config"
	"github.com/trafficadvisor/trafficadvisor/internal/predict"
	"github.com/trafficadvisor/trafficadvisor/internal/route"
	"github.com/trafficadvisor/trafficadvisor/internal/telemetry"
	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "trafficadvisor-api"

	// Local development convenience; missing .env files are fine.
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
		Msg("starting traffic advisory API")

	cfg := config.FromEnv()

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
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

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize HTTP metrics
	metrics := middleware.NewMetrics()

	// Build the map index and planner
	index := route.NewIndex(config.DefaultLocations())
	planner := route.NewPlanner(route.PlannerConfig{
		Index:     index,
		Estimator: traffic.NewEstimator(),
		Logger:    log,
	})
	log.Info().Int("locations", index.Len()).Msg("planner initialized")

	// Initialize the congestion predictor; a previously trained model is
	// picked up from disk when present.
	predictor := predict.New(predict.Config{
		Seed:   cfg.Seed,
		Logger: log,
	})
	if _, err := os.Stat(cfg.ModelPath); err == nil {
		if err := predictor.Load(cfg.ModelPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.ModelPath).Msg("stored model could not be loaded")
		} else {
			log.Info().Str("path", cfg.ModelPath).Msg("stored model loaded")
		}
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Planner:     planner,
		Index:       index,
		Predictor:   predictor,
		ModelPath:   cfg.ModelPath,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
