// Package main provides the offline training CLI. It generates a synthetic
// traffic dataset (or loads one from CSV), fits the congestion model, and
// writes the model bundle for the API server to load at startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/trafficadvisor/trafficadvisor/internal/config"
	"github.com/trafficadvisor/trafficadvisor/internal/predict"
	"github.com/trafficadvisor/trafficadvisor/internal/route"
	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
	"github.com/trafficadvisor/trafficadvisor/internal/validate"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	routes := flag.Int("routes", 50, "number of synthetic routes to generate")
	days := flag.Int("days", 30, "number of days to simulate")
	seed := flag.Int64("seed", 42, "random seed for the dataset and the model")
	out := flag.String("out", "traffic_model.json", "model bundle output path")
	csvPath := flag.String("csv", "", "optional CSV export path for the dataset")
	fromCSV := flag.String("from-csv", "", "train from an existing dataset CSV instead of generating one")
	trees := flag.Int("trees", 100, "ensemble size")
	flag.Parse()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "trafficadvisor-trainer").
		Str("version", Version).
		Logger()

	var records []traffic.Record
	if *fromCSV != "" {
		var err error
		records, err = loadDataset(*fromCSV)
		if err != nil {
			log.Fatal().Err(err).Str("path", *fromCSV).Msg("dataset load failed")
		}
		log.Info().
			Str("path", *fromCSV).
			Int("records", len(records)).
			Msg("dataset loaded")
	} else {
		index := route.NewIndex(config.DefaultLocations())
		gen := traffic.NewGenerator(traffic.GeneratorConfig{
			Locations: index.Names(),
			Seed:      *seed,
		})

		records = gen.Dataset(*routes, *days)
		log.Info().
			Int("routes", *routes).
			Int("days", *days).
			Int("records", len(records)).
			Msg("dataset generated")
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("cannot create CSV export")
		}
		if err := traffic.WriteCSV(f, records); err != nil {
			f.Close()
			log.Fatal().Err(err).Msg("CSV export failed")
		}
		if err := f.Close(); err != nil {
			log.Fatal().Err(err).Msg("CSV export failed")
		}
		log.Info().Str("path", *csvPath).Msg("dataset exported")
	}

	predictor := predict.New(predict.Config{
		NumTrees: *trees,
		Seed:     *seed,
		Logger:   log,
	})

	report, err := predictor.Train(records)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	log.Info().
		Float64("train_r2", report.TrainR2).
		Float64("test_r2", report.TestR2).
		Float64("test_mse", report.TestMSE).
		Msg("model trained")

	for feature, importance := range report.FeatureImportance {
		log.Debug().Str("feature", feature).Float64("importance", importance).Msg("feature importance")
	}

	if err := predictor.Save(*out); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("model save failed")
	}
	log.Info().Str("path", *out).Msg("model bundle written")
}

// loadDataset reads a historical dataset from a CSV export and validates
// every row before it reaches training.
func loadDataset(path string) ([]traffic.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := traffic.ReadCSV(f)
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := validate.Record(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return records, nil
}
