package traffic

import "math/rand"

// DefaultHighTrafficLocations are the location names that attract extra
// congestion regardless of time of day.
var DefaultHighTrafficLocations = []string{
	"Downtown",
	"Airport",
	"Business District",
	"Shopping Mall",
	"Train Station",
}

// congestionBand is an inclusive congestion range drawn from uniformly.
type congestionBand struct {
	Lo float64
	Hi float64
}

// Weekday and weekend time-of-day bands. Values model observed city traffic:
// pronounced morning and evening rush peaks on weekdays, a flat moderate
// plateau on weekend afternoons.
var (
	bandWeekdayMorningRush = congestionBand{0.7, 0.9}
	bandWeekdayEveningRush = congestionBand{0.6, 0.8}
	bandWeekdayDaytime     = congestionBand{0.4, 0.6}
	bandWeekdayEvening     = congestionBand{0.3, 0.5}
	bandWeekendDaytime     = congestionBand{0.3, 0.5}
	bandOffHours           = congestionBand{0.1, 0.3}
)

// highTrafficBoost is the multiplicative congestion boost applied per
// high-traffic endpoint of a route.
const highTrafficBoost = 1.2

// Estimator produces time-of-day congestion estimates without a trained
// model. Estimates are intentionally randomized per call within fixed bands;
// callers must not expect reproducibility.
type Estimator struct {
	highTraffic map[string]struct{}
}

// NewEstimator creates an Estimator using the default high-traffic location
// set.
func NewEstimator() *Estimator {
	return NewEstimatorWithLocations(DefaultHighTrafficLocations)
}

// NewEstimatorWithLocations creates an Estimator flagging the given location
// names as high-traffic.
func NewEstimatorWithLocations(highTraffic []string) *Estimator {
	set := make(map[string]struct{}, len(highTraffic))
	for _, name := range highTraffic {
		set[name] = struct{}{}
	}
	return &Estimator{highTraffic: set}
}

// Estimate returns a congestion score for the given hour (0-23) and day of
// week (0=Monday .. 6=Sunday), drawn uniformly from the matching band.
func (e *Estimator) Estimate(hour, dayOfWeek int) float64 {
	return uniform(e.band(hour, dayOfWeek))
}

// EstimateRoute returns a congestion score for a specific source/destination
// pair. High-traffic endpoints compound a fixed boost on top of the
// time-of-day band, with uniform jitter, clamped to [0, 1].
func (e *Estimator) EstimateRoute(hour, dayOfWeek int, source, destination string) float64 {
	score := e.Estimate(hour, dayOfWeek)
	score *= e.RouteFactor(source, destination)
	return ClampScore(score)
}

// RouteFactor returns the congestion multiplier for a location pair:
// ×1.2 per high-traffic endpoint, with jitter in [0.8, 1.2].
func (e *Estimator) RouteFactor(source, destination string) float64 {
	factor := 1.0
	if _, ok := e.highTraffic[source]; ok {
		factor *= highTrafficBoost
	}
	if _, ok := e.highTraffic[destination]; ok {
		factor *= highTrafficBoost
	}
	return factor * uniform(congestionBand{0.8, 1.2})
}

func (e *Estimator) band(hour, dayOfWeek int) congestionBand {
	if dayOfWeek == 5 || dayOfWeek == 6 {
		if hour >= 10 && hour <= 20 {
			return bandWeekendDaytime
		}
		return bandOffHours
	}
	switch {
	case hour >= 7 && hour <= 9:
		return bandWeekdayMorningRush
	case hour >= 17 && hour <= 19:
		return bandWeekdayEveningRush
	case hour >= 10 && hour <= 16:
		return bandWeekdayDaytime
	case hour >= 20 && hour <= 22:
		return bandWeekdayEvening
	default:
		return bandOffHours
	}
}

// uniform draws from the band using the shared process-wide source, which is
// safe for concurrent use.
func uniform(b congestionBand) float64 {
	return b.Lo + rand.Float64()*(b.Hi-b.Lo)
}

// IsRushHour reports whether the hour falls in the morning (7-9) or evening
// (17-19) rush window.
func IsRushHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}

// IsWeekend reports whether the day of week (0=Monday) is Saturday or Sunday.
func IsWeekend(dayOfWeek int) bool {
	return dayOfWeek == 5 || dayOfWeek == 6
}
