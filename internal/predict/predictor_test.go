package predict

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

var testLocations = []string{"Downtown", "Airport", "University", "Hospital", "Train Station"}

func trainingData(t *testing.T) []traffic.Record {
	t.Helper()
	gen := traffic.NewGenerator(traffic.GeneratorConfig{Locations: testLocations, Seed: 42})
	return gen.Dataset(6, 7)
}

func testConfig() Config {
	// Small ensemble keeps the tests fast without changing behavior.
	return Config{NumTrees: 15, MaxDepth: 8, MinLeaf: 5, Seed: 42}
}

func TestPredictor_UntrainedErrors(t *testing.T) {
	p := New(testConfig())

	_, err := p.Predict([]traffic.Record{{Source: "Downtown", Destination: "Airport"}})
	require.ErrorIs(t, err, ErrModelNotTrained)

	_, err = p.PredictOne("Downtown", "Airport", 8, 1, 12)
	require.ErrorIs(t, err, ErrModelNotTrained)

	err = p.Save(filepath.Join(t.TempDir(), "model.json"))
	require.ErrorIs(t, err, ErrModelNotTrained)

	assert.False(t, p.Trained())
	assert.Nil(t, p.FeatureImportance())
}

func TestPredictor_TrainTooFewRecords(t *testing.T) {
	p := New(testConfig())

	_, err := p.Train(trainingData(t)[:3])
	require.Error(t, err)
	assert.False(t, p.Trained())
}

func TestPredictor_Train(t *testing.T) {
	p := New(testConfig())
	records := trainingData(t)

	report, err := p.Train(records)
	require.NoError(t, err)
	require.True(t, p.Trained())

	assert.Equal(t, len(records), report.Samples)
	assert.Equal(t, len(featureColumns), report.Features)
	assert.GreaterOrEqual(t, report.TrainMSE, 0.0)
	assert.GreaterOrEqual(t, report.TestMSE, 0.0)
	assert.False(t, math.IsNaN(report.TrainR2))
	assert.False(t, math.IsNaN(report.TestR2))

	// The fit must beat predicting the mean on its own training data.
	assert.Greater(t, report.TrainR2, 0.0)

	var total float64
	for _, col := range featureColumns {
		imp, ok := report.FeatureImportance[col]
		require.True(t, ok, "missing importance for %s", col)
		assert.GreaterOrEqual(t, imp, 0.0)
		total += imp
	}
	assert.InDelta(t, 1.0, total, 1e-9, "importances must be normalized")
}

func TestPredictor_PredictRange(t *testing.T) {
	p := New(testConfig())
	records := trainingData(t)
	_, err := p.Train(records)
	require.NoError(t, err)

	scores, err := p.Predict(records[:200])
	require.NoError(t, err)
	require.Len(t, scores, 200)

	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestPredictor_PredictOne(t *testing.T) {
	p := New(testConfig())
	_, err := p.Train(trainingData(t))
	require.NoError(t, err)

	pred, err := p.PredictOne("Downtown", "Airport", 8, 1, 12)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pred.Congestion, 0.0)
	assert.LessOrEqual(t, pred.Congestion, 1.0)
	assert.Equal(t, traffic.LevelFromScore(pred.Congestion), pred.Level)
	assert.Equal(t, 12.0, pred.DistanceKm)
}

func TestPredictor_PredictOne_EstimatesDistance(t *testing.T) {
	p := New(testConfig())
	_, err := p.Train(trainingData(t))
	require.NoError(t, err)

	pred, err := p.PredictOne("Downtown", "Airport", 8, 1, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pred.DistanceKm, 5.0)
	assert.Less(t, pred.DistanceKm, 30.0)
}

func TestPredictor_PredictOne_UnseenLocation(t *testing.T) {
	p := New(testConfig())
	_, err := p.Train(trainingData(t))
	require.NoError(t, err)

	// Locations outside the training vocabulary must not fail: the encoder
	// grows instead.
	pred, err := p.PredictOne("Brand New Suburb", "Another Suburb", 14, 2, 9)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pred.Congestion, 0.0)
	assert.LessOrEqual(t, pred.Congestion, 1.0)
}

func TestPredictor_RushHourExceedsNight(t *testing.T) {
	p := New(testConfig())
	_, err := p.Train(trainingData(t))
	require.NoError(t, err)

	rush, err := p.PredictOne("Downtown", "Airport", 8, 1, 15)
	require.NoError(t, err)
	night, err := p.PredictOne("Downtown", "Airport", 3, 1, 15)
	require.NoError(t, err)

	assert.Greater(t, rush.Congestion, night.Congestion,
		"trained model should recover the rush-hour pattern")
}

func TestPredictor_SaveLoadRoundTrip(t *testing.T) {
	p := New(testConfig())
	records := trainingData(t)
	_, err := p.Train(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, p.Save(path))

	restored := New(testConfig())
	require.NoError(t, restored.Load(path))
	require.True(t, restored.Trained())

	want, err := p.Predict(records[:50])
	require.NoError(t, err)
	got, err := restored.Predict(records[:50])
	require.NoError(t, err)

	assert.Equal(t, want, got, "loaded model must predict identically")
}

func TestPredictor_LoadMissingFile(t *testing.T) {
	p := New(testConfig())
	err := p.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrModelNotTrained))
	assert.False(t, p.Trained())
}
