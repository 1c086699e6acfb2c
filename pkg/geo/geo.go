// Package geo computes geographic measures over lot perimeters
// expressed as latitude/longitude vertices.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	geoarea "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Point is one perimeter vertex.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Area returns the enclosed area in square meters. Fewer than three
// vertices enclose nothing.
func Area(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	return math.Abs(geoarea.Area(polygon(points)))
}

// Hectares converts square meters to hectares.
func Hectares(sqMeters float64) float64 {
	return sqMeters / 10000
}

// Centroid returns the perimeter centroid, or false when the perimeter
// encloses nothing.
func Centroid(points []Point) (Point, bool) {
	if len(points) < 3 {
		return Point{}, false
	}
	c, _ := planar.CentroidArea(polygon(points))
	return Point{Latitude: c.Lat(), Longitude: c.Lon()}, true
}

// polygon builds a closed orb polygon from the vertices.
func polygon(points []Point) orb.Polygon {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.Longitude, p.Latitude})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}
