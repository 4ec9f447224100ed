package polyline

import (
	"math"
	"testing"
)

// Worked example from the format documentation.
var googleExample = []Point{
	{Lat: 38.5, Lng: -120.2},
	{Lat: 40.7, Lng: -120.95},
	{Lat: 43.252, Lng: -126.453},
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []Point
	}{
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			want:    googleExample[:1],
		},
		{
			name:    "two points",
			encoded: "_p~iF~ps|U_ulLnnqC",
			want:    googleExample[:2],
		},
		{
			name:    "documentation example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			want:    googleExample,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.encoded)
			if err != nil {
				t.Fatalf("Decode(%q) returned error: %v", tt.encoded, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d points, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if !pointsEqual(got[i], tt.want[i], 0.001) {
					t.Errorf("point %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") returned error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestDecode_Truncated(t *testing.T) {
	// Drop the final byte so the last value never terminates.
	encoded := "_p~iF~ps|U_ulLnnqC"
	if _, err := Decode(encoded[:len(encoded)-1]); err == nil {
		t.Error("expected error for truncated input, got nil")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{name: "single point", points: googleExample[:1]},
		{name: "documentation example", points: googleExample},
		{
			name: "downtown to airport",
			points: []Point{
				{Lat: 40.7128, Lng: -74.0060},
				{Lat: 40.6413, Lng: -73.7781},
			},
		},
		{
			name: "high precision path",
			points: []Point{
				{Lat: 40.71274, Lng: -74.00597},
				{Lat: 40.71103, Lng: -74.00361},
				{Lat: 40.70892, Lng: -74.00058},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.points)
			if encoded == "" {
				t.Fatal("expected non-empty encoded string")
			}

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if len(decoded) != len(tt.points) {
				t.Fatalf("round-trip: expected %d points, got %d", len(tt.points), len(decoded))
			}
			for i := range decoded {
				// Precision of 5 decimal places.
				if !pointsEqual(decoded[i], tt.points[i], 0.00001) {
					t.Errorf("round-trip point %d: expected %+v, got %+v", i, tt.points[i], decoded[i])
				}
			}
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("expected empty string for nil points, got %q", got)
	}
	if got := Encode([]Point{}); got != "" {
		t.Errorf("expected empty string for empty points, got %q", got)
	}
}

func TestLengthKm(t *testing.T) {
	tests := []struct {
		name      string
		points    []Point
		wantKm    float64
		tolerance float64
	}{
		{name: "empty", points: nil, wantKm: 0, tolerance: 0},
		{name: "single point", points: []Point{{Lat: 40.7, Lng: -74.0}}, wantKm: 0, tolerance: 0},
		{
			name: "downtown to airport - roughly 20km",
			points: []Point{
				{Lat: 40.7128, Lng: -74.0060},
				{Lat: 40.6413, Lng: -73.7781},
			},
			wantKm:    20.8,
			tolerance: 1.0,
		},
		{
			name: "one degree of latitude - roughly 111km",
			points: []Point{
				{Lat: 0, Lng: 0},
				{Lat: 1, Lng: 0},
			},
			wantKm:    111.2,
			tolerance: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LengthKm(tt.points)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("expected ~%.1fkm (±%.1f), got %.2fkm", tt.wantKm, tt.tolerance, got)
			}
		})
	}
}

func TestSample(t *testing.T) {
	// Four points heading north, each hop roughly 1.1km.
	path := []Point{
		{Lat: 40.70, Lng: -74.0},
		{Lat: 40.71, Lng: -74.0},
		{Lat: 40.72, Lng: -74.0},
		{Lat: 40.73, Lng: -74.0},
	}

	t.Run("every 500m", func(t *testing.T) {
		sampled := Sample(path, 0.5)
		if len(sampled) < 5 {
			t.Errorf("expected at least 5 samples, got %d", len(sampled))
		}
		if !pointsEqual(sampled[0], path[0], 0.0001) {
			t.Error("first sample should be the first point")
		}
		if !pointsEqual(sampled[len(sampled)-1], path[len(path)-1], 0.0001) {
			t.Error("last sample should be the last point")
		}
	})

	t.Run("interval beyond path length", func(t *testing.T) {
		sampled := Sample(path, 10)
		if len(sampled) != 2 {
			t.Errorf("expected endpoints only, got %d samples", len(sampled))
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if sampled := Sample(nil, 0.5); sampled != nil {
			t.Errorf("expected nil for empty path, got %v", sampled)
		}
	})

	t.Run("non-positive interval returns input", func(t *testing.T) {
		if sampled := Sample(path, 0); len(sampled) != len(path) {
			t.Errorf("expected all points back, got %d", len(sampled))
		}
	})
}

func pointsEqual(a, b Point, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance && math.Abs(a.Lng-b.Lng) <= tolerance
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Encode(googleExample)
	}
}

func BenchmarkDecode(b *testing.B) {
	encoded := Encode(googleExample)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(encoded)
	}
}
