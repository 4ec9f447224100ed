package traffic

import "testing"

// The estimator is randomized by design, so tests assert band membership
// rather than exact values.

func TestEstimator_WeekdayBands(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		name string
		hour int
		lo   float64
		hi   float64
	}{
		{"morning rush", 8, 0.7, 0.9},
		{"evening rush", 18, 0.6, 0.8},
		{"daytime", 13, 0.4, 0.6},
		{"evening", 21, 0.3, 0.5},
		{"night", 3, 0.1, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				score := e.Estimate(tt.hour, 1)
				if score < tt.lo || score > tt.hi {
					t.Fatalf("Estimate(%d, 1) = %v, want within [%v, %v]", tt.hour, score, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestEstimator_WeekendBands(t *testing.T) {
	e := NewEstimator()

	for i := 0; i < 50; i++ {
		if score := e.Estimate(14, 6); score < 0.3 || score > 0.5 {
			t.Fatalf("weekend daytime score %v outside [0.3, 0.5]", score)
		}
		if score := e.Estimate(4, 5); score < 0.1 || score > 0.3 {
			t.Fatalf("weekend off-hours score %v outside [0.1, 0.3]", score)
		}
	}
}

func TestEstimator_EstimateRoute_Clamped(t *testing.T) {
	e := NewEstimator()

	// Both endpoints high-traffic during morning rush: the compounded boost
	// pushes toward (and past) 1.0, so the clamp must hold.
	for i := 0; i < 100; i++ {
		score := e.EstimateRoute(8, 1, "Downtown", "Airport")
		if score < 0 || score > 1 {
			t.Fatalf("EstimateRoute score %v outside [0, 1]", score)
		}
	}
}

func TestEstimator_RouteFactor(t *testing.T) {
	e := NewEstimator()

	// Jitter is [0.8, 1.2], boosts compound at 1.2 per endpoint.
	for i := 0; i < 100; i++ {
		f := e.RouteFactor("Residential Area A", "Residential Area B")
		if f < 0.8 || f > 1.2 {
			t.Fatalf("plain route factor %v outside [0.8, 1.2]", f)
		}

		f = e.RouteFactor("Downtown", "Airport")
		if f < 1.2*1.2*0.8 || f > 1.2*1.2*1.2 {
			t.Fatalf("high-traffic route factor %v outside expected range", f)
		}
	}
}

func TestIsRushHour(t *testing.T) {
	rush := map[int]bool{7: true, 8: true, 9: true, 17: true, 18: true, 19: true}
	for hour := 0; hour < 24; hour++ {
		if got := IsRushHour(hour); got != rush[hour] {
			t.Errorf("IsRushHour(%d) = %v, want %v", hour, got, rush[hour])
		}
	}
}

func TestIsWeekend(t *testing.T) {
	for day := 0; day < 7; day++ {
		want := day == 5 || day == 6
		if got := IsWeekend(day); got != want {
			t.Errorf("IsWeekend(%d) = %v, want %v", day, got, want)
		}
	}
}
