package traffic

import (
	"fmt"
	"math/rand"
)

// Generator bands are wider than the estimator's: synthetic data covers the
// full congestion range so the predictor sees severe conditions in training.
var (
	genWeekdayMorningRush = congestionBand{0.7, 1.0}
	genWeekdayEveningRush = congestionBand{0.6, 0.9}
	genWeekdayDaytime     = congestionBand{0.4, 0.7}
	genWeekdayEvening     = congestionBand{0.3, 0.6}
	genWeekendDaytime     = congestionBand{0.3, 0.6}
	genOffHours           = congestionBand{0.1, 0.3}
)

// GeneratorConfig holds configuration for the synthetic dataset generator.
type GeneratorConfig struct {
	// Locations is the set of location names to route between.
	Locations []string

	// HighTrafficLocations flag locations that attract extra congestion.
	// Defaults to DefaultHighTrafficLocations.
	HighTrafficLocations []string

	// Seed seeds the generator's private random source. The generator is
	// fully reproducible for a given seed, unlike the runtime Estimator.
	// Default: 42.
	Seed int64
}

// Generator produces reproducible synthetic traffic datasets for predictor
// training and development.
type Generator struct {
	locations   []string
	highTraffic map[string]struct{}
	rng         *rand.Rand
}

// NewGenerator creates a seeded Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}
	high := cfg.HighTrafficLocations
	if high == nil {
		high = DefaultHighTrafficLocations
	}
	set := make(map[string]struct{}, len(high))
	for _, name := range high {
		set[name] = struct{}{}
	}
	return &Generator{
		locations:   cfg.Locations,
		highTraffic: set,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// routeSpec is a sampled route with a fixed distance.
type routeSpec struct {
	ID          string
	Source      string
	Destination string
	DistanceKm  float64
}

// sampleRoutes draws numRoutes source/destination pairs (with replacement)
// from all ordered location pairs and assigns each a distance in [5, 50) km.
func (g *Generator) sampleRoutes(numRoutes int) []routeSpec {
	var pairs [][2]string
	for _, src := range g.locations {
		for _, dst := range g.locations {
			if src != dst {
				pairs = append(pairs, [2]string{src, dst})
			}
		}
	}

	routes := make([]routeSpec, 0, numRoutes)
	for i := 0; i < numRoutes; i++ {
		pair := pairs[g.rng.Intn(len(pairs))]
		routes = append(routes, routeSpec{
			ID:          fmt.Sprintf("R%04d", i),
			Source:      pair[0],
			Destination: pair[1],
			DistanceKm:  round2(5 + g.rng.Float64()*45),
		})
	}
	return routes
}

// Dataset generates a complete dataset: numRoutes sampled routes observed
// every hour over the given number of days.
func (g *Generator) Dataset(numRoutes, days int) []Record {
	routes := g.sampleRoutes(numRoutes)

	records := make([]Record, 0, len(routes)*days*24)
	for day := 0; day < days; day++ {
		dayOfWeek := day % 7
		for hour := 0; hour < 24; hour++ {
			for _, route := range routes {
				records = append(records, g.observe(route, hour, dayOfWeek))
			}
		}
	}
	return records
}

// observe generates one traffic record for a route at a specific time.
func (g *Generator) observe(route routeSpec, hour, dayOfWeek int) Record {
	congestion := g.uniform(g.band(hour, dayOfWeek))
	congestion *= g.routeFactor(route.Source, route.Destination)
	congestion = ClampScore(congestion)

	speed := g.speed(congestion)
	fuel := g.fuel(route.DistanceKm, speed)

	return Record{
		RouteID:       route.ID,
		Source:        route.Source,
		Destination:   route.Destination,
		DistanceKm:    route.DistanceKm,
		Hour:          hour,
		DayOfWeek:     dayOfWeek,
		Level:         LevelFromScore(congestion),
		Congestion:    round3(congestion),
		AvgSpeedKmh:   round1(speed),
		TravelTimeMin: round1(route.DistanceKm / speed * 60),
		FuelL:         round3(fuel),
		CO2Kg:         round3(fuel * CO2KgPerLiter),
	}
}

func (g *Generator) band(hour, dayOfWeek int) congestionBand {
	if IsWeekend(dayOfWeek) {
		if hour >= 10 && hour <= 20 {
			return genWeekendDaytime
		}
		return genOffHours
	}
	switch {
	case hour >= 7 && hour <= 9:
		return genWeekdayMorningRush
	case hour >= 17 && hour <= 19:
		return genWeekdayEveningRush
	case hour >= 10 && hour <= 16:
		return genWeekdayDaytime
	case hour >= 20 && hour <= 22:
		return genWeekdayEvening
	default:
		return genOffHours
	}
}

func (g *Generator) routeFactor(source, destination string) float64 {
	factor := 1.0
	if _, ok := g.highTraffic[source]; ok {
		factor *= highTrafficBoost
	}
	if _, ok := g.highTraffic[destination]; ok {
		factor *= highTrafficBoost
	}
	return factor * g.uniform(congestionBand{0.8, 1.2})
}

// speed interpolates from free flow down to the gridlock floor with ±10%
// jitter, clamped to [15, 60] km/h.
func (g *Generator) speed(congestion float64) float64 {
	speed := FreeFlowSpeedKmh - congestion*(FreeFlowSpeedKmh-MinSpeedKmh)
	speed *= g.uniform(congestionBand{0.9, 1.1})
	if speed < MinSpeedKmh {
		return MinSpeedKmh
	}
	if speed > FreeFlowSpeedKmh {
		return FreeFlowSpeedKmh
	}
	return speed
}

// fuel applies a stop-and-go surcharge at crawl speeds and a drag surcharge
// at highway speeds.
func (g *Generator) fuel(distanceKm, speedKmh float64) float64 {
	factor := 1.0
	switch {
	case speedKmh < 30:
		factor = 1.3
	case speedKmh > 80:
		factor = 1.2
	}
	return distanceKm * FuelBaseLPerKm * factor
}

func (g *Generator) uniform(b congestionBand) float64 {
	return b.Lo + g.rng.Float64()*(b.Hi-b.Lo)
}
