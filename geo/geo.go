// Package geo contains the spherical primitives shared by the point
// classifier, the polygon partitioner and the cookie cutter: unit-vector
// points, great-circle arcs, closed rings, polylines and multipoints.
package geo

import (
	"errors"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Epsilon is the threshold below which the sine of the angle between two
// points is treated as zero, i.e. the points coincide or are antipodal.
const Epsilon = 1e-12

// centroidEpsilon is the minimum length of a vector sum before it is
// considered stable enough to normalise.
const centroidEpsilon = 1e-9

var (
	// ErrTooFewVertices is returned when a ring has fewer than three vertices
	// or a polyline fewer than two.
	ErrTooFewVertices = errors.New("geo: too few vertices")
	// ErrEmpty is returned when a multipoint has no points.
	ErrEmpty = errors.New("geo: empty geometry")
)

// Geometry is a candidate geometry that can be classified and partitioned.
// The set of implementations is closed: *Ring, *Polyline and *Multipoint.
type Geometry interface {
	// NumPoints returns the number of points defining the geometry.
	NumPoints() int
	// Points returns a copy of the points defining the geometry.
	Points() []s2.Point

	geometry()
}

// PointFromDegrees returns the unit vector for a latitude/longitude pair.
func PointFromDegrees(lat, lng float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
}

// CountPoints returns the total number of points across geometries.
func CountPoints(geoms []Geometry) int {
	n := 0
	for _, g := range geoms {
		n += g.NumPoints()
	}
	return n
}

func unit(v r3.Vector) s2.Point {
	return s2.Point{Vector: v.Normalize()}
}

func normalizeAll(pts []s2.Point) []s2.Point {
	res := make([]s2.Point, len(pts))
	for i, p := range pts {
		if p.IsUnit() {
			res[i] = p
		} else {
			res[i] = unit(p.Vector)
		}
	}
	return res
}
