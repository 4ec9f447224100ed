package route

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

// ErrSameLocation indicates source and destination are identical.
var ErrSameLocation = errors.New("source and destination are the same location")

// probeHours is the departure-hour sweep used when no preferred hour is
// given. It covers the daytime window at two-hour resolution.
var probeHours = []int{6, 8, 10, 12, 14, 16, 18, 20}

// detourDampening reduces congestion on long detours. Routes that trade
// distance for less-traveled roads see proportionally lighter traffic.
const detourDampening = 0.9

// PlannerConfig holds configuration for the Planner.
type PlannerConfig struct {
	// Index resolves location names to coordinates.
	Index *Index

	// Estimator supplies heuristic congestion when no trained predictor
	// is available.
	Estimator *traffic.Estimator

	// MaxAlternatives caps the routes returned per query, direct route
	// included (default: 5).
	MaxAlternatives int

	// CongestionThreshold marks an evaluation as a low-congestion option
	// when its score falls strictly below it (default: 0.7).
	CongestionThreshold float64

	// DetourLimit bounds waypoint routes to this multiple of the direct
	// distance (default: 1.5).
	DetourLimit float64

	// Logger for planning events.
	Logger zerolog.Logger
}

// Planner enumerates and scores routes between named locations.
type Planner struct {
	cfg PlannerConfig
	log zerolog.Logger
}

// NewPlanner creates a Planner with defaults filled in.
func NewPlanner(cfg PlannerConfig) *Planner {
	if cfg.Index == nil {
		cfg.Index = NewIndex(nil)
	}
	if cfg.Estimator == nil {
		cfg.Estimator = traffic.NewEstimator()
	}
	if cfg.MaxAlternatives <= 0 {
		cfg.MaxAlternatives = 5
	}
	if cfg.CongestionThreshold <= 0 {
		cfg.CongestionThreshold = 0.7
	}
	if cfg.DetourLimit <= 0 {
		cfg.DetourLimit = 1.5
	}
	return &Planner{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "planner").Logger(),
	}
}

// Alternatives enumerates candidate routes from source to destination: the
// direct route first, then single-waypoint detours within the detour limit,
// ordered by total distance.
func (p *Planner) Alternatives(source, destination string) ([]Route, error) {
	if source == destination {
		return nil, ErrSameLocation
	}

	directKm := p.cfg.Index.DistanceKm(source, destination)
	routes := []Route{{
		Kind:        KindDirect,
		Description: fmt.Sprintf("Direct route from %s to %s", source, destination),
		Waypoints:   []string{source, destination},
		DistanceKm:  round2(directKm),
		Factor:      1.0,
	}}

	var detours []Route
	for _, waypoint := range p.cfg.Index.Names() {
		if waypoint == source || waypoint == destination {
			continue
		}
		viaKm := p.cfg.Index.DistanceKm(source, waypoint) + p.cfg.Index.DistanceKm(waypoint, destination)
		if viaKm > directKm*p.cfg.DetourLimit {
			continue
		}
		detours = append(detours, Route{
			Kind:        KindViaWaypoint,
			Description: fmt.Sprintf("Via %s", waypoint),
			Waypoints:   []string{source, waypoint, destination},
			DistanceKm:  round2(viaKm),
			Factor:      round2(viaKm / directKm),
		})
	}
	sort.Slice(detours, func(i, j int) bool { return detours[i].DistanceKm < detours[j].DistanceKm })

	routes = append(routes, detours...)
	if len(routes) > p.cfg.MaxAlternatives {
		routes = routes[:p.cfg.MaxAlternatives]
	}
	return routes, nil
}

// Evaluate scores a route at the given hour and day of week. A trained
// predictor supplies the congestion estimate; any predictor error or an
// untrained predictor falls back to the time-of-day heuristic.
func (p *Planner) Evaluate(r Route, hour, dayOfWeek int, pred Predictor) Evaluation {
	congestion := p.congestion(r, hour, dayOfWeek, pred)

	// Long detours trade distance for lighter traffic.
	if r.Factor > 1.2 {
		congestion *= detourDampening
	}
	congestion = traffic.ClampScore(congestion)

	m := traffic.DeriveForRoute(r.DistanceKm, congestion)
	return Evaluation{
		Route:         r,
		Hour:          hour,
		DayOfWeek:     dayOfWeek,
		Congestion:    round3(congestion),
		Level:         traffic.LevelFromScore(congestion),
		AvgSpeedKmh:   m.AvgSpeedKmh,
		TravelTimeMin: m.TravelTimeMin,
		FuelL:         m.FuelL,
		CO2Kg:         m.CO2Kg,
	}
}

func (p *Planner) congestion(r Route, hour, dayOfWeek int, pred Predictor) float64 {
	if pred != nil && pred.Trained() {
		score, err := pred.EstimateCongestion(r.Source(), r.Destination(), hour, dayOfWeek, r.DistanceKm)
		if err == nil {
			return score
		}
		p.log.Warn().Err(err).
			Str("source", r.Source()).
			Str("destination", r.Destination()).
			Msg("prediction failed, using heuristic estimate")
	}
	return p.cfg.Estimator.EstimateRoute(hour, dayOfWeek, r.Source(), r.Destination())
}

// Optimize sweeps routes and departure hours and picks the best options by
// travel time, fuel, and emissions. preferredHour of -1 sweeps a fixed
// daytime probe set; otherwise hours within ±3 of the preference are
// considered, wrapping around midnight.
func (p *Planner) Optimize(source, destination string, preferredHour, dayOfWeek int, pred Predictor) (*Optimization, error) {
	routes, err := p.Alternatives(source, destination)
	if err != nil {
		return nil, err
	}

	hours := probeHours
	var preferred *int
	if preferredHour >= 0 {
		h := preferredHour % 24
		preferred = &h
		hours = hourWindow(h, 3)
	}

	evals := make([]Evaluation, 0, len(routes)*len(hours))
	for _, r := range routes {
		for _, hour := range hours {
			evals = append(evals, p.Evaluate(r, hour, dayOfWeek, pred))
		}
	}

	// Ties keep the earliest evaluation, so results are deterministic for
	// a fixed congestion source.
	bestTime := argmin(evals, func(e Evaluation) float64 { return e.TravelTimeMin })
	bestFuel := argmin(evals, func(e Evaluation) float64 { return e.FuelL })
	bestCO2 := argmin(evals, func(e Evaluation) float64 { return e.CO2Kg })

	var low []Evaluation
	for _, e := range evals {
		if e.Congestion < p.cfg.CongestionThreshold {
			low = append(low, e)
			if len(low) == 3 {
				break
			}
		}
	}

	p.log.Debug().
		Str("source", source).
		Str("destination", destination).
		Int("routes", len(routes)).
		Int("evaluations", len(evals)).
		Msg("optimization complete")

	return &Optimization{
		Source:        source,
		Destination:   destination,
		PreferredHour: preferred,
		DayOfWeek:     dayOfWeek,
		BestTime:      evals[bestTime],
		BestFuel:      evals[bestFuel],
		BestCO2:       evals[bestCO2],
		LowCongestion: low,
		Evaluations:   evals,
	}, nil
}

// hourWindow returns the hours within ±span of center, wrapping mod 24,
// in ascending offset order starting at the left edge.
func hourWindow(center, span int) []int {
	hours := make([]int, 0, 2*span+1)
	for off := -span; off <= span; off++ {
		hours = append(hours, ((center+off)%24+24)%24)
	}
	return hours
}

func argmin(evals []Evaluation, key func(Evaluation) float64) int {
	best := 0
	for i := 1; i < len(evals); i++ {
		if key(evals[i]) < key(evals[best]) {
			best = i
		}
	}
	return best
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
