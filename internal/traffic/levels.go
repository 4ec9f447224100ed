// Package traffic provides congestion estimation, traffic level
// classification, and the physical metrics derived from a congestion score.
package traffic

import "math"

// Level is the discrete traffic bucket derived from a congestion score.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
	LevelSevere Level = "severe"
)

// levelBand is a half-open congestion range [Min, Max) mapped to a level.
type levelBand struct {
	Level Level
	Min   float64
	Max   float64
}

// levelBands is ordered ascending; scores at or above the last band's lower
// bound classify as severe.
var levelBands = []levelBand{
	{LevelLow, 0.0, 0.3},
	{LevelMedium, 0.3, 0.6},
	{LevelHigh, 0.6, 0.8},
	{LevelSevere, 0.8, 1.0},
}

// LevelFromScore maps a congestion score to its traffic level.
// Scores of 0.8 and above always classify as severe, including 1.0 which
// falls outside the half-open band checks.
func LevelFromScore(score float64) Level {
	for _, band := range levelBands {
		if score >= band.Min && score < band.Max {
			return band.Level
		}
	}
	return LevelSevere
}

// ValidLevel reports whether l is a recognized traffic level.
func ValidLevel(l Level) bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelSevere:
		return true
	}
	return false
}

// ClampScore forces a congestion score into the valid [0, 1] range.
func ClampScore(score float64) float64 {
	return math.Max(0.0, math.Min(1.0, score))
}
