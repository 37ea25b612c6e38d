package geo

import "github.com/golang/geo/s2"

// Polyline is an open chain of arcs through at least two points.
type Polyline struct {
	pts []s2.Point
}

// NewPolyline creates a polyline.
func NewPolyline(pts []s2.Point) (*Polyline, error) {
	if len(pts) < 2 {
		return nil, ErrTooFewVertices
	}
	return &Polyline{pts: normalizeAll(pts)}, nil
}

// NumPoints returns the number of points.
func (p *Polyline) NumPoints() int { return len(p.pts) }

// NumArcs returns the number of arcs.
func (p *Polyline) NumArcs() int { return len(p.pts) - 1 }

// Point returns the i-th point.
func (p *Polyline) Point(i int) s2.Point { return p.pts[i] }

// Arc returns the arc from point i to point i+1.
func (p *Polyline) Arc(i int) Arc { return NewArc(p.pts[i], p.pts[i+1]) }

// Points returns a copy of the points.
func (p *Polyline) Points() []s2.Point {
	return append(make([]s2.Point, 0, len(p.pts)), p.pts...)
}

func (*Polyline) geometry() {}

// --------------------------------------------------------------------

// Multipoint is an unordered, non-empty set of points.
type Multipoint struct {
	pts []s2.Point
}

// NewMultipoint creates a multipoint.
func NewMultipoint(pts []s2.Point) (*Multipoint, error) {
	if len(pts) == 0 {
		return nil, ErrEmpty
	}
	return &Multipoint{pts: normalizeAll(pts)}, nil
}

// NumPoints returns the number of points.
func (m *Multipoint) NumPoints() int { return len(m.pts) }

// Point returns the i-th point.
func (m *Multipoint) Point(i int) s2.Point { return m.pts[i] }

// Points returns a copy of the points.
func (m *Multipoint) Points() []s2.Point {
	return append(make([]s2.Point, 0, len(m.pts)), m.pts...)
}

func (*Multipoint) geometry() {}
