// Package polyline implements the Google encoded polyline format used to
// ship route geometry over the API without a coordinate array per point.
// Format reference: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// Point is a geographic coordinate along a route path.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// precision is the standard 5-decimal-place scaling of the format.
const precision = 1e5

// Encode encodes points into a polyline string. Empty input encodes to "".
func Encode(points []Point) string {
	buf := make([]byte, 0, len(points)*6)
	prevLat, prevLng := 0, 0

	for _, p := range points {
		lat := int(math.Round(p.Lat * precision))
		lng := int(math.Round(p.Lng * precision))
		buf = appendSigned(buf, lat-prevLat)
		buf = appendSigned(buf, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return string(buf)
}

// appendSigned writes one zigzag-encoded delta as 5-bit chunks.
func appendSigned(buf []byte, v int) []byte {
	if v < 0 {
		v = ^(v << 1)
	} else {
		v <<= 1
	}
	for v >= 0x20 {
		buf = append(buf, byte(v&0x1f|0x20)+63)
		v >>= 5
	}
	return append(buf, byte(v)+63)
}

// Decode decodes a polyline string back into points. It returns an error
// when the input ends in the middle of a value.
func Decode(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, nil
	}

	points := make([]Point, 0, len(encoded)/6+1)
	lat, lng := 0, 0
	pos := 0

	for pos < len(encoded) {
		dLat, next, err := readSigned(encoded, pos)
		if err != nil {
			return nil, err
		}
		dLng, next, err := readSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		pos = next

		lat += dLat
		lng += dLng
		points = append(points, Point{
			Lat: float64(lat) / precision,
			Lng: float64(lng) / precision,
		})
	}
	return points, nil
}

// readSigned reads one delta starting at pos and returns it with the next
// read position.
func readSigned(encoded string, pos int) (int, int, error) {
	result, shift := 0, 0
	for {
		if pos >= len(encoded) {
			return 0, pos, fmt.Errorf("polyline: truncated value at byte %d", pos)
		}
		chunk := int(encoded[pos]) - 63
		pos++
		result |= (chunk & 0x1f) << shift
		if chunk < 0x20 {
			break
		}
		shift += 5
	}
	if result&1 != 0 {
		return ^(result >> 1), pos, nil
	}
	return result >> 1, pos, nil
}

// earthRadiusKm is the mean Earth radius used for segment lengths.
const earthRadiusKm = 6371.0

// LengthKm returns the path length along the points in kilometers.
func LengthKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += segmentKm(points[i-1], points[i])
	}
	return total
}

// Sample returns points spaced roughly intervalKm apart along the path,
// interpolating inside segments. The first and last points are always
// included. A non-positive interval returns the input unchanged.
func Sample(points []Point, intervalKm float64) []Point {
	if len(points) == 0 {
		return nil
	}
	if intervalKm <= 0 {
		return points
	}

	sampled := []Point{points[0]}
	walked := 0.0

	for i := 1; i < len(points); i++ {
		segment := segmentKm(points[i-1], points[i])

		for walked+segment >= intervalKm {
			step := intervalKm - walked
			frac := step / segment
			sampled = append(sampled, Point{
				Lat: points[i-1].Lat + frac*(points[i].Lat-points[i-1].Lat),
				Lng: points[i-1].Lng + frac*(points[i].Lng-points[i-1].Lng),
			})
			segment -= step
			walked = 0
		}
		walked += segment
	}

	last := points[len(points)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}
	return sampled
}

func segmentKm(a, b Point) float64 {
	pa := s2.LatLngFromDegrees(a.Lat, a.Lng)
	pb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return pa.Distance(pb).Radians() * earthRadiusKm
}
