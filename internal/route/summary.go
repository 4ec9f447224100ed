package route

import (
	"fmt"
	"strings"
)

// Summary renders an optimization result as a short human-readable report.
func Summary(o *Optimization) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Route optimization: %s to %s\n", o.Source, o.Destination)
	fmt.Fprintf(&b, "Best departure time: %s (%s, %.1f min, %.1f km/h avg)\n",
		clock12(o.BestTime.Hour), o.BestTime.Description, o.BestTime.TravelTimeMin, o.BestTime.AvgSpeedKmh)
	fmt.Fprintf(&b, "Most fuel efficient: %s (%s, %.2f L)\n",
		clock12(o.BestFuel.Hour), o.BestFuel.Description, o.BestFuel.FuelL)
	fmt.Fprintf(&b, "Lowest emissions: %s (%s, %.2f kg CO2)\n",
		clock12(o.BestCO2.Hour), o.BestCO2.Description, o.BestCO2.CO2Kg)

	if len(o.LowCongestion) > 0 {
		b.WriteString("Low congestion options:\n")
		for _, e := range o.LowCongestion {
			fmt.Fprintf(&b, "  %s via %s (%s traffic, score %.2f)\n",
				clock12(e.Hour), e.Description, e.Level, e.Congestion)
		}
	} else {
		b.WriteString("No low congestion options in the searched window.\n")
	}

	return b.String()
}

// clock12 formats an hour of day on the 12-hour clock.
func clock12(hour int) string {
	h := ((hour % 24) + 24) % 24
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
