package models

import (
	"github.com/trafficadvisor/trafficadvisor/internal/route"
	"github.com/trafficadvisor/trafficadvisor/internal/sustainability"
	"github.com/trafficadvisor/trafficadvisor/pkg/polyline"
)

// OptimizeRequest asks for the best route and departure time between two
// locations. PreferredTime is optional; when empty the whole day is probed.
type OptimizeRequest struct {
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	PreferredTime string `json:"preferred_time,omitempty"`
	DayOfWeek     int    `json:"day_of_week"`
}

// OptimizeResponse wraps the optimization result with a readable summary.
type OptimizeResponse struct {
	*route.Optimization
	Summary string `json:"summary"`
}

// EvaluateRequest asks for a single route evaluation at a specific time.
type EvaluateRequest struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Time        string  `json:"time"`
	DayOfWeek   int     `json:"day_of_week"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
	RouteFactor float64 `json:"route_factor,omitempty"`
}

// RouteGeometry pairs a candidate route with its encoded polyline and a
// sampled point preview for map rendering.
type RouteGeometry struct {
	route.Route
	Geometry string           `json:"geometry,omitempty"`
	Preview  []polyline.Point `json:"preview,omitempty"`
}

// AlternativesResponse lists candidate routes for a source and destination.
type AlternativesResponse struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Routes      []RouteGeometry `json:"routes"`
}

// LocationsResponse lists the known map locations.
type LocationsResponse struct {
	Locations []route.Location `json:"locations"`
}

// TrainRequest triggers model training on a synthetic dataset.
type TrainRequest struct {
	Routes int   `json:"routes,omitempty"`
	Days   int   `json:"days,omitempty"`
	Seed   int64 `json:"seed,omitempty"`
}

// PredictRequest asks for a learned congestion estimate.
type PredictRequest struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Time        string  `json:"time"`
	DayOfWeek   int     `json:"day_of_week"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
}

// CompareRequest asks for a per-mode footprint comparison over a trip.
// Congestion is optional; when set, consumption is adjusted for traffic.
type CompareRequest struct {
	DistanceKm float64  `json:"distance_km"`
	Congestion *float64 `json:"congestion_score,omitempty"`
}

// CompareResponse holds per-mode impacts, best score first.
type CompareResponse struct {
	DistanceKm      float64                         `json:"distance_km"`
	Impacts         []sustainability.Impact         `json:"impacts"`
	Adjusted        []sustainability.AdjustedImpact `json:"adjusted_impacts,omitempty"`
	Recommendations []string                        `json:"recommendations"`
}

// AnnualLeg is one leg of a recurring daily commute.
type AnnualLeg struct {
	DistanceKm float64             `json:"distance_km"`
	Mode       sustainability.Mode `json:"mode"`
}

// AnnualRequest asks for an annual projection of a daily commute. Legs
// lists the daily trips; the top-level distance and mode describe a
// single-leg commute when Legs is empty.
type AnnualRequest struct {
	DistanceKm float64             `json:"distance_km,omitempty"`
	Mode       sustainability.Mode `json:"mode,omitempty"`
	Legs       []AnnualLeg         `json:"legs,omitempty"`
	Days       int                 `json:"working_days,omitempty"`
}
