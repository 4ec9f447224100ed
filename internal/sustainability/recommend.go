package sustainability

import (
	"fmt"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

const (
	// workingDaysPerYear is the commute-day count used for annual
	// projections.
	workingDaysPerYear = 250

	// treeAbsorptionKgPerYear is the CO2 a mature tree absorbs annually.
	treeAbsorptionKgPerYear = 21.8
)

// Recommendations suggests greener choices for a trip of the given length.
// Savings are quoted against a gasoline car over the same distance.
func Recommendations(distanceKm float64) []string {
	car := ImpactFor(distanceKm, ModeCarGasoline)

	var recs []string
	if distanceKm <= 2 {
		recs = append(recs, fmt.Sprintf(
			"Walking this %.1f km trip avoids %.2f kg of CO2 and costs nothing.",
			distanceKm, car.CO2Kg))
	}
	if distanceKm <= 8 {
		recs = append(recs, fmt.Sprintf(
			"Cycling covers %.1f km in roughly %.0f minutes and avoids %.2f kg of CO2.",
			distanceKm, distanceKm/15*60, car.CO2Kg))
	}
	if distanceKm > 3 {
		saved := car.CO2Kg - ImpactFor(distanceKm, ModePublicTransport).CO2Kg
		recs = append(recs, fmt.Sprintf(
			"Public transport saves about %.2f kg of CO2 versus driving.", saved))
	}
	if saved := car.CO2Kg - ImpactFor(distanceKm, ModeCarElectric).CO2Kg; saved > 0 {
		recs = append(recs, fmt.Sprintf(
			"An electric car emits %.2f kg less CO2 on this trip.", saved))
	}
	recs = append(recs,
		"Traveling outside peak hours reduces fuel burned in congestion.")
	if distanceKm > 5 {
		recs = append(recs,
			"Carpooling halves the per-person footprint of this trip.")
	}
	return recs
}

// AnnualImpact projects a daily commute's footprint over a working year.
// Daily figures are the sums across all legs of the commute.
type AnnualImpact struct {
	DailyDistanceKm  float64 `json:"daily_distance_km"`
	DailyCO2Kg       float64 `json:"daily_co2_kg"`
	DailyCost        float64 `json:"daily_cost"`
	WorkingDays      int     `json:"working_days"`
	AnnualDistanceKm float64 `json:"annual_distance_km"`
	AnnualCO2Kg      float64 `json:"annual_co2_kg"`
	AnnualCost       float64 `json:"annual_cost"`
	TreesNeeded      float64 `json:"trees_to_offset"`
	GasolineLiters   float64 `json:"equivalent_gasoline_l"`
}

// Annualize projects the combined footprint of the daily legs over the
// working year. A non-positive days value uses the standard 250-day year.
// Trees are the count needed to absorb the annual CO2; gasoline is the
// volume whose combustion emits it.
func Annualize(daily []Impact, days int) AnnualImpact {
	if days <= 0 {
		days = workingDaysPerYear
	}

	var distance, co2, cost float64
	for _, impact := range daily {
		distance += impact.DistanceKm
		co2 += impact.CO2Kg
		cost += impact.Cost
	}

	annualCO2 := co2 * float64(days)
	return AnnualImpact{
		DailyDistanceKm:  round2(distance),
		DailyCO2Kg:       round2(co2),
		DailyCost:        round2(cost),
		WorkingDays:      days,
		AnnualDistanceKm: round2(distance * float64(days)),
		AnnualCO2Kg:      round2(annualCO2),
		AnnualCost:       round2(cost * float64(days)),
		TreesNeeded:      round1(annualCO2 / treeAbsorptionKgPerYear),
		GasolineLiters:   round1(annualCO2 / traffic.CO2KgPerLiter),
	}
}
