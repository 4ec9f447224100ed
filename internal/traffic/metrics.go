package traffic

import "math"

// Physical constants shared by metric derivation, the evaluator, and the
// synthetic dataset generator.
const (
	// FreeFlowSpeedKmh is the uncongested speed ceiling.
	FreeFlowSpeedKmh = 60.0
	// BaseRouteSpeedKmh is the base speed used when evaluating a specific route.
	BaseRouteSpeedKmh = 50.0
	// MinSpeedKmh is the gridlock speed floor.
	MinSpeedKmh = 15.0
	// FuelBaseLPerKm is the base fuel consumption per kilometer.
	FuelBaseLPerKm = 0.08
	// CO2KgPerLiter is the CO2 emitted per liter of gasoline burned.
	CO2KgPerLiter = 2.31

	// speedPenaltyFactor caps the route speed reduction at 70% of base.
	speedPenaltyFactor = 0.7
	// fuelSurchargeFactor raises fuel burn by up to 30% under full congestion.
	fuelSurchargeFactor = 0.3
)

// Metrics are the physical quantities derived from a distance and a
// congestion score.
type Metrics struct {
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
	TravelTimeMin float64 `json:"travel_time_min"`
	FuelL         float64 `json:"fuel_consumption_l"`
	CO2Kg         float64 `json:"co2_emission_kg"`
}

// Derive computes travel metrics from a distance and congestion score using
// the free-flow speed ceiling. Speed interpolates linearly from 60 km/h at
// free flow down to 15 km/h at gridlock.
func Derive(distanceKm, congestion float64) Metrics {
	congestion = ClampScore(congestion)
	speed := FreeFlowSpeedKmh - congestion*(FreeFlowSpeedKmh-MinSpeedKmh)
	return metricsAt(distanceKm, congestion, speed)
}

// DeriveForRoute computes travel metrics the way the route evaluator does:
// a 50 km/h base reduced by up to 70% as congestion rises, floored at the
// minimum speed.
func DeriveForRoute(distanceKm, congestion float64) Metrics {
	congestion = ClampScore(congestion)
	speed := BaseRouteSpeedKmh * (1 - congestion*speedPenaltyFactor)
	return metricsAt(distanceKm, congestion, speed)
}

// Rounding helpers matching the precision of stored dataset columns.
func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round3(f float64) float64 { return math.Round(f*1000) / 1000 }

func metricsAt(distanceKm, congestion, speed float64) Metrics {
	speed = math.Max(MinSpeedKmh, speed)
	fuel := distanceKm * FuelBaseLPerKm * (1 + congestion*fuelSurchargeFactor)
	return Metrics{
		AvgSpeedKmh:   speed,
		TravelTimeMin: distanceKm / speed * 60,
		FuelL:         fuel,
		CO2Kg:         fuel * CO2KgPerLiter,
	}
}
