package predict

import (
	"math"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

// Column names of the engineered feature matrix, in vector order. The
// cyclical sin/cos terms remove the discontinuity at hour 23→0 and day 6→0.
var featureColumns = []string{
	"distance_km",
	"hour",
	"day_of_week",
	"source_encoded",
	"destination_encoded",
	"is_weekend",
	"is_rush_hour",
	"hour_sin",
	"hour_cos",
	"day_sin",
	"day_cos",
}

// Encoder column names. The traffic level is encoded alongside the route
// endpoints to keep the encoder vocabulary aligned with the dataset layout,
// but it does not enter the feature vector: it is itself derived from the
// prediction target.
const (
	colSource      = "source"
	colDestination = "destination"
	colLevel       = "traffic_level"
)

// featureRow builds the feature vector for one record using the given
// encoders. Encoders grow on unseen categories.
func featureRow(rec traffic.Record, encoders map[string]*LabelEncoder) []float64 {
	srcCode := encoders[colSource].Encode(rec.Source)
	dstCode := encoders[colDestination].Encode(rec.Destination)
	encoders[colLevel].Encode(string(rec.Level))

	hourAngle := 2 * math.Pi * float64(rec.Hour) / 24
	dayAngle := 2 * math.Pi * float64(rec.DayOfWeek) / 7

	return []float64{
		rec.DistanceKm,
		float64(rec.Hour),
		float64(rec.DayOfWeek),
		float64(srcCode),
		float64(dstCode),
		boolFeature(traffic.IsWeekend(rec.DayOfWeek)),
		boolFeature(traffic.IsRushHour(rec.Hour)),
		math.Sin(hourAngle),
		math.Cos(hourAngle),
		math.Sin(dayAngle),
		math.Cos(dayAngle),
	}
}

// featureMatrix builds the feature matrix and target vector for a dataset.
func featureMatrix(records []traffic.Record, encoders map[string]*LabelEncoder) ([][]float64, []float64) {
	X := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		X[i] = featureRow(rec, encoders)
		y[i] = rec.Congestion
	}
	return X, y
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
