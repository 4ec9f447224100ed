package route

import (
	"math/rand"
	"sort"

	"github.com/golang/geo/s2"

	"github.com/trafficadvisor/trafficadvisor/pkg/polyline"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Location is a named point on the map.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Index resolves location names to coordinates and measures distances
// between them. Lookups are case-sensitive by name.
type Index struct {
	byName map[string]Location
}

// NewIndex builds an Index over the given locations. Later duplicates of a
// name win.
func NewIndex(locations []Location) *Index {
	byName := make(map[string]Location, len(locations))
	for _, loc := range locations {
		byName[loc.Name] = loc
	}
	return &Index{byName: byName}
}

// Lookup returns the location for name.
func (ix *Index) Lookup(name string) (Location, bool) {
	loc, ok := ix.byName[name]
	return loc, ok
}

// Names returns all known location names in sorted order.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.byName))
	for name := range ix.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locations returns all known locations ordered by name.
func (ix *Index) Locations() []Location {
	names := ix.Names()
	locs := make([]Location, len(names))
	for i, name := range names {
		locs[i] = ix.byName[name]
	}
	return locs
}

// Len returns the number of indexed locations.
func (ix *Index) Len() int { return len(ix.byName) }

// DistanceKm returns the great-circle distance between two named locations.
// When either name is unknown the distance is drawn uniformly from
// [5, 40) km so planning still proceeds.
func (ix *Index) DistanceKm(source, destination string) float64 {
	from, okFrom := ix.byName[source]
	to, okTo := ix.byName[destination]
	if !okFrom || !okTo {
		return 5 + rand.Float64()*35
	}
	return GreatCircleKm(from, to)
}

// path returns the route's waypoint coordinates in route order. Waypoints
// missing from the index are skipped.
func (ix *Index) path(r Route) []polyline.Point {
	points := make([]polyline.Point, 0, len(r.Waypoints))
	for _, name := range r.Waypoints {
		if loc, ok := ix.byName[name]; ok {
			points = append(points, polyline.Point{Lat: loc.Lat, Lng: loc.Lng})
		}
	}
	return points
}

// Geometry returns the encoded polyline over the route's waypoint
// coordinates.
func (ix *Index) Geometry(r Route) string {
	return polyline.Encode(ix.path(r))
}

// previewPoints is the rough sample count Preview aims for per route.
const previewPoints = 8

// Preview returns points spaced evenly along the route's path for map
// rendering, endpoints included.
func (ix *Index) Preview(r Route) []polyline.Point {
	points := ix.path(r)
	if len(points) < 2 {
		return points
	}
	interval := polyline.LengthKm(points) / previewPoints
	return polyline.Sample(points, interval)
}

// GreatCircleKm computes the spherical distance between two locations.
func GreatCircleKm(a, b Location) float64 {
	pa := s2.LatLngFromDegrees(a.Lat, a.Lng)
	pb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return pa.Distance(pb).Radians() * earthRadiusKm
}
