// Package sustainability compares the environmental footprint of transport
// modes over a trip and projects daily commutes to annual impact.
package sustainability

import (
	"math"
	"sort"
)

// Mode is a supported transport mode.
type Mode string

const (
	ModeWalking         Mode = "walking"
	ModeBicycle         Mode = "bicycle"
	ModePublicTransport Mode = "public_transport"
	ModeCarElectric     Mode = "car_electric"
	ModeCarDiesel       Mode = "car_diesel"
	ModeCarGasoline     Mode = "car_gasoline"
)

// profile holds the per-kilometer footprint of one mode. Score is a fixed
// 0 to 100 sustainability rating.
type profile struct {
	CO2KgPerKm     float64
	EnergyKWhPerKm float64
	CostPerKm      float64
	Score          float64
}

var profiles = map[Mode]profile{
	ModeWalking:         {CO2KgPerKm: 0, EnergyKWhPerKm: 0, CostPerKm: 0, Score: 100},
	ModeBicycle:         {CO2KgPerKm: 0, EnergyKWhPerKm: 0, CostPerKm: 0.02, Score: 95},
	ModePublicTransport: {CO2KgPerKm: 0.040, EnergyKWhPerKm: 0.15, CostPerKm: 0.08, Score: 80},
	ModeCarElectric:     {CO2KgPerKm: 0.050, EnergyKWhPerKm: 0.20, CostPerKm: 0.15, Score: 70},
	ModeCarDiesel:       {CO2KgPerKm: 0.165, EnergyKWhPerKm: 0.60, CostPerKm: 0.22, Score: 40},
	ModeCarGasoline:     {CO2KgPerKm: 0.180, EnergyKWhPerKm: 0.65, CostPerKm: 0.25, Score: 35},
}

// Modes returns the supported modes ordered by sustainability score,
// best first.
func Modes() []Mode {
	modes := make([]Mode, 0, len(profiles))
	for m := range profiles {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool {
		if profiles[modes[i]].Score != profiles[modes[j]].Score {
			return profiles[modes[i]].Score > profiles[modes[j]].Score
		}
		return modes[i] < modes[j]
	})
	return modes
}

// ValidMode reports whether m has a footprint profile.
func ValidMode(m Mode) bool {
	_, ok := profiles[m]
	return ok
}

// Impact is the footprint of one trip by one mode.
type Impact struct {
	Mode       Mode    `json:"mode"`
	DistanceKm float64 `json:"distance_km"`
	CO2Kg      float64 `json:"co2_emission_kg"`
	EnergyKWh  float64 `json:"energy_kwh"`
	Cost       float64 `json:"cost"`
	Score      float64 `json:"sustainability_score"`
}

// ImpactFor computes the footprint of a trip. Unknown modes fall back to
// the gasoline car profile, the most conservative assumption.
func ImpactFor(distanceKm float64, mode Mode) Impact {
	p, ok := profiles[mode]
	if !ok {
		mode = ModeCarGasoline
		p = profiles[mode]
	}
	return Impact{
		Mode:       mode,
		DistanceKm: distanceKm,
		CO2Kg:      round2(distanceKm * p.CO2KgPerKm),
		EnergyKWh:  round2(distanceKm * p.EnergyKWhPerKm),
		Cost:       round2(distanceKm * p.CostPerKm),
		Score:      p.Score,
	}
}

// CompareModes computes the footprint of a trip under every mode, best
// sustainability score first.
func CompareModes(distanceKm float64) []Impact {
	modes := Modes()
	impacts := make([]Impact, len(modes))
	for i, m := range modes {
		impacts[i] = ImpactFor(distanceKm, m)
	}
	return impacts
}

// congestionSurcharge scales consumption per unit of congestion score.
// Stop-and-go traffic burns more fuel over the same distance.
const congestionSurcharge = 0.4

// AdjustedImpact is an Impact scaled for traffic conditions.
type AdjustedImpact struct {
	Impact
	CongestionScore float64 `json:"congestion_score"`
	PenaltyPct      float64 `json:"congestion_penalty_pct"`
}

// AdjustForCongestion scales a trip's consumption by the congestion level.
// The sustainability score itself is a property of the mode and does not
// change.
func AdjustForCongestion(impact Impact, congestion float64) AdjustedImpact {
	if congestion < 0 {
		congestion = 0
	} else if congestion > 1 {
		congestion = 1
	}
	multiplier := 1 + congestionSurcharge*congestion

	adjusted := impact
	adjusted.CO2Kg = round2(impact.CO2Kg * multiplier)
	adjusted.EnergyKWh = round2(impact.EnergyKWh * multiplier)
	adjusted.Cost = round2(impact.Cost * multiplier)

	return AdjustedImpact{
		Impact:          adjusted,
		CongestionScore: congestion,
		PenaltyPct:      round1((multiplier - 1) * 100),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
