// Package geo provides the coordinate primitives used to frame survey maps:
// points in decimal degrees, axis-aligned bounding boxes, and the great-circle
// distance used for scale bars and group statistics.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// minSpanDegrees is the floor applied to a degenerate (zero-span) axis
// before a margin factor is applied, so a single-waypoint box still frames
// a visible area instead of a zero-area point.
const minSpanDegrees = 1e-4

// Point is a geographic position in decimal degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Bounds is the minimal axis-aligned rectangle enclosing a set of points.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// BoundsOf accumulates the enclosing rectangle of points. The second return
// is false when points is empty, in which case the zero Bounds is returned.
func BoundsOf(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLon: points[0].Lon,
		MinLat: points[0].Lat,
		MaxLon: points[0].Lon,
		MaxLat: points[0].Lat,
	}
	for _, p := range points[1:] {
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
	}
	return b, true
}

// Expand returns a new box enlarged (frac > 0) or shrunk (frac < 0)
// symmetrically by frac of each axis span. A frac of 0 returns the input
// unchanged. Degenerate axes are padded to minSpanDegrees before the factor
// applies, and a shrink that would cross the box over itself collapses that
// axis to its midpoint, so min <= max always holds on the result.
func (b Bounds) Expand(frac float64) Bounds {
	if frac == 0 {
		return b
	}

	spanLon := b.MaxLon - b.MinLon
	spanLat := b.MaxLat - b.MinLat
	if spanLon < minSpanDegrees {
		spanLon = minSpanDegrees
	}
	if spanLat < minSpanDegrees {
		spanLat = minSpanDegrees
	}

	dLon := spanLon * frac / 2
	dLat := spanLat * frac / 2
	out := Bounds{
		MinLon: b.MinLon - dLon,
		MinLat: b.MinLat - dLat,
		MaxLon: b.MaxLon + dLon,
		MaxLat: b.MaxLat + dLat,
	}

	if out.MinLon > out.MaxLon {
		mid := (b.MinLon + b.MaxLon) / 2
		out.MinLon, out.MaxLon = mid, mid
	}
	if out.MinLat > out.MaxLat {
		mid := (b.MinLat + b.MaxLat) / 2
		out.MinLat, out.MaxLat = mid, mid
	}
	return out
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p Point) bool {
	if p.Lon < b.MinLon || p.Lon > b.MaxLon {
		return false
	}
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	return true
}

// Width returns the longitude span in degrees.
func (b Bounds) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude span in degrees.
func (b Bounds) Height() float64 { return b.MaxLat - b.MinLat }

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{
		Lon: (b.MinLon + b.MaxLon) / 2,
		Lat: (b.MinLat + b.MaxLat) / 2,
	}
}

// GroundWidthMeters returns the great-circle distance across the box at its
// central latitude. Scale bars are sized against this.
func (b Bounds) GroundWidthMeters() float64 {
	lat := b.Center().Lat
	return DistanceMeters(Point{Lon: b.MinLon, Lat: lat}, Point{Lon: b.MaxLon, Lat: lat})
}

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// MetersPerLonDegree returns the ground length of one degree of longitude at
// the given latitude. Used to convert a scale-bar length back into data
// coordinates when drawing.
func MetersPerLonDegree(lat float64) float64 {
	return DistanceMeters(Point{Lon: 0, Lat: lat}, Point{Lon: 1, Lat: lat})
}
