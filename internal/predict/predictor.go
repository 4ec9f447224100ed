package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

// ErrModelNotTrained indicates prediction or save was attempted before a
// successful Train or Load.
var ErrModelNotTrained = errors.New("model not trained")

var (
	trainingRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficadvisor_predictor_training_runs_total",
		Help: "Total number of completed training runs.",
	})
	trainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trafficadvisor_predictor_training_duration_seconds",
		Help:    "Duration of predictor training runs.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	})
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficadvisor_predictor_predictions_total",
		Help: "Total number of congestion predictions served.",
	})
)

// Config holds configuration for the Predictor.
type Config struct {
	// NumTrees is the ensemble size (default: 100).
	NumTrees int

	// MaxDepth bounds individual tree depth (default: 10).
	MaxDepth int

	// MinLeaf is the minimum samples per leaf (default: 5).
	MinLeaf int

	// TestFraction is the held-out share of the training data (default: 0.2).
	TestFraction float64

	// Seed drives the train/test split and tree randomness (default: 42).
	Seed int64

	// Logger for training and persistence events.
	Logger zerolog.Logger
}

// Predictor is a trainable congestion regressor. Trained state is guarded by
// a single-writer lock: Train and Load replace it, prediction reads it.
// Prediction also takes the write lock because encoding can grow the
// categorical vocabularies on unseen locations.
type Predictor struct {
	cfg Config
	log zerolog.Logger

	mu          sync.RWMutex
	forest      *Forest
	encoders    map[string]*LabelEncoder
	featureCols []string
	trained     bool
}

// Report summarizes a training run.
type Report struct {
	TrainMSE          float64            `json:"train_mse"`
	TestMSE           float64            `json:"test_mse"`
	TrainR2           float64            `json:"train_r2"`
	TestR2            float64            `json:"test_r2"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	Samples           int                `json:"n_samples"`
	Features          int                `json:"n_features"`
}

// Prediction is the result of a single-route congestion prediction.
type Prediction struct {
	Congestion  float64       `json:"congestion_score"`
	Level       traffic.Level `json:"traffic_level"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Hour        int           `json:"hour"`
	DayOfWeek   int           `json:"day_of_week"`
	DistanceKm  float64       `json:"distance_km"`
}

// New creates a Predictor with defaults filled in.
func New(cfg Config) *Predictor {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 5
	}
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		cfg.TestFraction = 0.2
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	return &Predictor{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "predictor").Logger(),
	}
}

// minTrainingRecords is the smallest dataset that still leaves both
// partitions non-empty after the split.
const minTrainingRecords = 10

// Train fits the ensemble on historical records and replaces any previously
// trained state.
func (p *Predictor) Train(records []traffic.Record) (*Report, error) {
	if len(records) < minTrainingRecords {
		return nil, fmt.Errorf("training requires at least %d records, got %d", minTrainingRecords, len(records))
	}

	start := time.Now()

	encoders := freshEncoders(records)
	X, y := featureMatrix(records, encoders)

	// Seeded shuffle keeps the split reproducible across runs.
	rng := rand.New(rand.NewSource(p.cfg.Seed))
	perm := rng.Perm(len(X))
	numTest := int(float64(len(X)) * p.cfg.TestFraction)
	if numTest == 0 {
		numTest = 1
	}
	testIdx, trainIdx := perm[:numTest], perm[numTest:]

	trainX, trainY := subset(X, y, trainIdx)

	mtry := len(featureColumns) / 3
	if mtry < 1 {
		mtry = 1
	}
	forest := trainForest(trainX, trainY, forestParams{
		numTrees: p.cfg.NumTrees,
		tree: treeParams{
			maxDepth: p.cfg.MaxDepth,
			minLeaf:  p.cfg.MinLeaf,
			mtry:     mtry,
		},
	}, rng)

	testX, testY := subset(X, y, testIdx)
	trainMSE, trainR2 := evaluate(forest, trainX, trainY)
	testMSE, testR2 := evaluate(forest, testX, testY)

	importance := make(map[string]float64, len(featureColumns))
	for i, col := range featureColumns {
		importance[col] = forest.Importance[i]
	}

	p.mu.Lock()
	p.forest = forest
	p.encoders = encoders
	p.featureCols = append([]string(nil), featureColumns...)
	p.trained = true
	p.mu.Unlock()

	trainingRuns.Inc()
	trainingDuration.Observe(time.Since(start).Seconds())
	p.log.Info().
		Int("samples", len(records)).
		Int("features", len(featureColumns)).
		Float64("train_mse", trainMSE).
		Float64("test_mse", testMSE).
		Float64("test_r2", testR2).
		Dur("duration", time.Since(start)).
		Msg("predictor trained")

	return &Report{
		TrainMSE:          trainMSE,
		TestMSE:           testMSE,
		TrainR2:           trainR2,
		TestR2:            testR2,
		FeatureImportance: importance,
		Samples:           len(records),
		Features:          len(featureColumns),
	}, nil
}

// Predict returns congestion scores for the given records, clipped to
// [0, 1]. Returns ErrModelNotTrained before the first Train or Load.
func (p *Predictor) Predict(records []traffic.Record) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.trained {
		return nil, ErrModelNotTrained
	}

	scores := make([]float64, len(records))
	for i, rec := range records {
		row := featureRow(rec, p.encoders)
		scores[i] = traffic.ClampScore(p.forest.Predict(row))
	}
	predictionsServed.Add(float64(len(records)))
	return scores, nil
}

// PredictOne predicts congestion for a specific route and time. A
// non-positive distance is replaced with a uniform estimate in [5, 30) km.
func (p *Predictor) PredictOne(source, destination string, hour, dayOfWeek int, distanceKm float64) (*Prediction, error) {
	if distanceKm <= 0 {
		distanceKm = 5 + rand.Float64()*25
	}

	scores, err := p.Predict([]traffic.Record{{
		Source:      source,
		Destination: destination,
		DistanceKm:  distanceKm,
		Hour:        hour,
		DayOfWeek:   dayOfWeek,
		Level:       traffic.LevelMedium, // placeholder, not a feature
	}})
	if err != nil {
		return nil, err
	}

	score := math.Round(scores[0]*1000) / 1000
	return &Prediction{
		Congestion:  score,
		Level:       traffic.LevelFromScore(score),
		Source:      source,
		Destination: destination,
		Hour:        hour,
		DayOfWeek:   dayOfWeek,
		DistanceKm:  distanceKm,
	}, nil
}

// EstimateCongestion adapts PredictOne to the route planner's predictor
// contract.
func (p *Predictor) EstimateCongestion(source, destination string, hour, dayOfWeek int, distanceKm float64) (float64, error) {
	pred, err := p.PredictOne(source, destination, hour, dayOfWeek, distanceKm)
	if err != nil {
		return 0, err
	}
	return pred.Congestion, nil
}

// Trained reports whether the predictor holds a fitted model.
func (p *Predictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.trained
}

// FeatureImportance returns the fitted model's normalized per-feature
// importances, or nil if untrained.
func (p *Predictor) FeatureImportance() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.trained {
		return nil
	}
	importance := make(map[string]float64, len(p.featureCols))
	for i, col := range p.featureCols {
		importance[col] = p.forest.Importance[i]
	}
	return importance
}

// bundle is the persisted model unit: fitted ensemble, encoder states, and
// the feature column ordering they were trained with.
type bundle struct {
	Forest         *Forest                  `json:"forest"`
	Encoders       map[string]*LabelEncoder `json:"encoders"`
	FeatureColumns []string                 `json:"feature_columns"`
}

// Save writes the trained model bundle to path.
func (p *Predictor) Save(path string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.trained {
		return fmt.Errorf("save model: %w", ErrModelNotTrained)
	}

	data, err := json.Marshal(bundle{
		Forest:         p.forest,
		Encoders:       p.encoders,
		FeatureColumns: p.featureCols,
	})
	if err != nil {
		return fmt.Errorf("encode model bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model bundle: %w", err)
	}

	p.log.Info().Str("path", path).Msg("model bundle saved")
	return nil
}

// Load replaces the predictor state with a previously saved bundle and
// marks the predictor trained.
func (p *Predictor) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model bundle: %w", err)
	}

	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("decode model bundle: %w", err)
	}
	if b.Forest == nil || len(b.Forest.Trees) == 0 {
		return fmt.Errorf("model bundle %s contains no fitted ensemble", path)
	}

	p.mu.Lock()
	p.forest = b.Forest
	p.encoders = b.Encoders
	p.featureCols = b.FeatureColumns
	p.trained = true
	p.mu.Unlock()

	p.log.Info().Str("path", path).Msg("model bundle loaded")
	return nil
}

// freshEncoders fits new encoders over the full dataset vocabulary.
func freshEncoders(records []traffic.Record) map[string]*LabelEncoder {
	sources := make([]string, len(records))
	dests := make([]string, len(records))
	levels := make([]string, len(records))
	for i, rec := range records {
		sources[i] = rec.Source
		dests[i] = rec.Destination
		levels[i] = string(rec.Level)
	}

	encoders := map[string]*LabelEncoder{
		colSource:      NewLabelEncoder(),
		colDestination: NewLabelEncoder(),
		colLevel:       NewLabelEncoder(),
	}
	encoders[colSource].Fit(sources)
	encoders[colDestination].Fit(dests)
	encoders[colLevel].Fit(levels)
	return encoders
}

func subset(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	subX := make([][]float64, len(idx))
	subY := make([]float64, len(idx))
	for i, j := range idx {
		subX[i] = X[j]
		subY[i] = y[j]
	}
	return subX, subY
}

// evaluate computes MSE and R² of the forest over a partition.
func evaluate(f *Forest, X [][]float64, y []float64) (mse, r2 float64) {
	if len(y) == 0 {
		return 0, 0
	}

	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, row := range X {
		diff := f.Predict(row) - y[i]
		ssRes += diff * diff
		dev := y[i] - mean
		ssTot += dev * dev
	}

	mse = ssRes / float64(len(y))
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return mse, r2
}
