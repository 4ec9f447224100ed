// Package route provides route enumeration between named locations and
// congestion-aware scoring of route and departure-time combinations.
package route

import (
	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

// Kind distinguishes the direct route from waypoint detours.
type Kind string

const (
	// KindDirect is the straight source→destination route.
	KindDirect Kind = "direct"
	// KindViaWaypoint is a detour through one intermediate location.
	KindViaWaypoint Kind = "via_waypoint"
)

// Route is one candidate path between two locations. Routes are immutable
// once created; evaluation embeds a copy rather than mutating the original.
type Route struct {
	Kind        Kind     `json:"route_type"`
	Description string   `json:"description"`
	Waypoints   []string `json:"waypoints"`
	DistanceKm  float64  `json:"distance_km"`
	// Factor is total distance over the direct distance; 1.0 for the
	// direct route.
	Factor float64 `json:"route_factor"`
}

// Source returns the first waypoint.
func (r Route) Source() string { return r.Waypoints[0] }

// Destination returns the last waypoint.
func (r Route) Destination() string { return r.Waypoints[len(r.Waypoints)-1] }

// Evaluation is a route scored at a specific hour and day of week.
type Evaluation struct {
	Route
	Hour          int           `json:"hour"`
	DayOfWeek     int           `json:"day_of_week"`
	Congestion    float64       `json:"congestion_score"`
	Level         traffic.Level `json:"traffic_level"`
	AvgSpeedKmh   float64       `json:"avg_speed_kmh"`
	TravelTimeMin float64       `json:"travel_time_min"`
	FuelL         float64       `json:"fuel_consumption_l"`
	CO2Kg         float64       `json:"co2_emission_kg"`
}

// Optimization aggregates the best options over a route × departure-hour
// sweep. Selections point into Evaluations, which is retained in evaluation
// order for downstream inspection.
type Optimization struct {
	Source        string       `json:"source"`
	Destination   string       `json:"destination"`
	PreferredHour *int         `json:"preferred_hour,omitempty"`
	DayOfWeek     int          `json:"day_of_week"`
	BestTime      Evaluation   `json:"best_time"`
	BestFuel      Evaluation   `json:"best_fuel_efficiency"`
	BestCO2       Evaluation   `json:"best_environmental"`
	LowCongestion []Evaluation `json:"low_congestion_options"`
	Evaluations   []Evaluation `json:"all_evaluations"`
}

// Predictor supplies learned congestion estimates to the evaluator. Any
// error is recovered locally by falling back to the time-of-day heuristic.
type Predictor interface {
	// Trained reports whether the model can serve predictions.
	Trained() bool
	// EstimateCongestion predicts the congestion score for a route at a
	// specific hour and day of week.
	EstimateCongestion(source, destination string, hour, dayOfWeek int, distanceKm float64) (float64, error)
}
