// Package validate checks and normalizes user-supplied planning inputs
// before they reach the estimation core.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
)

const (
	minLocationLen = 2
	maxLocationLen = 100
)

var locationPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,()]+$`)

// Location checks that a location name is well formed: printable name
// characters only, between 2 and 100 characters after trimming.
func Location(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minLocationLen {
		return fmt.Errorf("location %q is too short, need at least %d characters", name, minLocationLen)
	}
	if len(trimmed) > maxLocationLen {
		return fmt.Errorf("location is too long, at most %d characters", maxLocationLen)
	}
	if !locationPattern.MatchString(trimmed) {
		return fmt.Errorf("location %q contains unsupported characters", name)
	}
	return nil
}

// SanitizeLocation trims surrounding whitespace and title-cases each word,
// so "  downtown  " and "Downtown" name the same place.
func SanitizeLocation(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// ParseHour accepts either a bare hour ("14") or a clock time ("14:30")
// and returns the hour of day. Minutes are accepted and discarded.
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	hourPart := s
	if h, rest, found := strings.Cut(s, ":"); found {
		hourPart = h
		minutes, err := strconv.Atoi(rest)
		if err != nil || minutes < 0 || minutes > 59 {
			return 0, fmt.Errorf("invalid minutes in time %q", s)
		}
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if err := Hour(hour); err != nil {
		return 0, err
	}
	return hour, nil
}

// Hour checks that an hour of day is in [0, 23].
func Hour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range 0 to 23", hour)
	}
	return nil
}

// DayOfWeek checks that a day index is in [0, 6], Monday first.
func DayOfWeek(day int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("day of week %d out of range 0 to 6", day)
	}
	return nil
}

// CongestionScore checks that a score is in [0, 1].
func CongestionScore(score float64) error {
	if score < 0 || score > 1 {
		return fmt.Errorf("congestion score %g out of range 0 to 1", score)
	}
	return nil
}

// DistanceKm checks that a trip distance is positive and plausible.
func DistanceKm(km float64) error {
	if km <= 0 {
		return fmt.Errorf("distance %g must be positive", km)
	}
	if km > 2000 {
		return fmt.Errorf("distance %g km exceeds the supported range", km)
	}
	return nil
}

// Record checks that a historical observation is internally consistent.
func Record(rec traffic.Record) error {
	if err := Location(rec.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := Location(rec.Destination); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if err := DistanceKm(rec.DistanceKm); err != nil {
		return err
	}
	if err := Hour(rec.Hour); err != nil {
		return err
	}
	if err := DayOfWeek(rec.DayOfWeek); err != nil {
		return err
	}
	if err := CongestionScore(rec.Congestion); err != nil {
		return err
	}
	if !traffic.ValidLevel(rec.Level) {
		return fmt.Errorf("unknown traffic level %q", rec.Level)
	}
	return nil
}
