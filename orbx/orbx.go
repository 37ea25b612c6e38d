// Package orbx converts between planar orb geometries in longitude/latitude
// degrees and spherical geo geometries.
package orbx

import (
	"github.com/bsm/platecut/geo"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrHoles is returned for polygons with inner rings.
var ErrHoles = errors.New("orbx: polygons with holes are not supported")

// FromOrb converts an orb geometry into a geo geometry. Polygons must not
// have holes.
func FromOrb(g orb.Geometry) (geo.Geometry, error) {
	switch v := g.(type) {
	case orb.Point:
		return MultipointFromOrb(orb.MultiPoint{v})
	case orb.MultiPoint:
		return MultipointFromOrb(v)
	case orb.LineString:
		return PolylineFromOrb(v)
	case orb.Ring:
		return RingFromOrb(v)
	case orb.Polygon:
		if len(v) == 0 {
			return nil, errors.Wrap(geo.ErrTooFewVertices, "orbx: empty polygon")
		} else if len(v) > 1 {
			return nil, ErrHoles
		}
		return RingFromOrb(v[0])
	}
	return nil, errors.Errorf("orbx: unsupported geometry type %s", geometryType(g))
}

// RingFromOrb converts a ring. The closing point is optional.
func RingFromOrb(r orb.Ring) (*geo.Ring, error) {
	ring, err := geo.NewRing(points(r))
	if err != nil {
		return nil, errors.Wrap(err, "orbx: ring")
	}
	return ring, nil
}

// PolylineFromOrb converts a line string.
func PolylineFromOrb(ls orb.LineString) (*geo.Polyline, error) {
	line, err := geo.NewPolyline(points(ls))
	if err != nil {
		return nil, errors.Wrap(err, "orbx: line string")
	}
	return line, nil
}

// MultipointFromOrb converts a multi-point.
func MultipointFromOrb(mp orb.MultiPoint) (*geo.Multipoint, error) {
	m, err := geo.NewMultipoint(points(mp))
	if err != nil {
		return nil, errors.Wrap(err, "orbx: multi-point")
	}
	return m, nil
}

// ToOrb converts a geo geometry into an orb geometry. Rings are returned
// as closed orb.Ring values.
func ToOrb(g geo.Geometry) orb.Geometry {
	switch v := g.(type) {
	case *geo.Ring:
		pts := v.Points()
		r := make(orb.Ring, 0, len(pts)+1)
		for _, p := range pts {
			r = append(r, orbPoint(p))
		}
		return append(r, r[0])
	case *geo.Polyline:
		pts := v.Points()
		ls := make(orb.LineString, 0, len(pts))
		for _, p := range pts {
			ls = append(ls, orbPoint(p))
		}
		return ls
	case *geo.Multipoint:
		pts := v.Points()
		mp := make(orb.MultiPoint, 0, len(pts))
		for _, p := range pts {
			mp = append(mp, orbPoint(p))
		}
		return mp
	}
	return nil
}

func points(pts []orb.Point) []s2.Point {
	res := make([]s2.Point, 0, len(pts))
	for _, p := range pts {
		res = append(res, geo.PointFromDegrees(p.Lat(), p.Lon()))
	}
	return res
}

func orbPoint(p s2.Point) orb.Point {
	ll := s2.LatLngFromPoint(p)
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "<nil>"
	}
	return g.GeoJSONType()
}
