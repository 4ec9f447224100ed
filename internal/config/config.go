// Package config loads application configuration from the environment and
// defines the built-in demo map.
package config

import (
	"os"
	"strconv"

	"github.com/trafficadvisor/trafficadvisor/internal/route"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Environment      string
	ModelPath        string
	OTLPEndpoint     string
	TelemetryEnabled bool
	Seed             int64
	DatasetRoutes    int
	DatasetDays      int
}

// FromEnv creates a Config from environment variables.
func FromEnv() Config {
	seed, _ := strconv.ParseInt(getEnvOrDefault("TRAINING_SEED", "42"), 10, 64)
	routes, _ := strconv.Atoi(getEnvOrDefault("DATASET_ROUTES", "50"))
	days, _ := strconv.Atoi(getEnvOrDefault("DATASET_DAYS", "30"))

	return Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		ModelPath:        getEnvOrDefault("MODEL_PATH", "traffic_model.json"),
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
		Seed:             seed,
		DatasetRoutes:    routes,
		DatasetDays:      days,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// defaultLocationNames are the built-in demo map's locations. The first
// five double as the high-traffic set.
var defaultLocationNames = []string{
	"Downtown",
	"Airport",
	"Business District",
	"Shopping Mall",
	"Train Station",
	"University",
	"Hospital",
	"Stadium",
	"Harbor",
	"Suburb North",
}

// DefaultLocations lays the demo locations out on a grid around lower
// Manhattan, a few kilometers apart.
func DefaultLocations() []route.Location {
	const baseLat, baseLng = 40.7128, -74.0060

	locs := make([]route.Location, len(defaultLocationNames))
	for i, name := range defaultLocationNames {
		locs[i] = route.Location{
			Name: name,
			Lat:  baseLat + (float64(i%4)-1.5)*0.1,
			Lng:  baseLng + (float64(i/4)-1.5)*0.1,
		}
	}
	return locs
}
