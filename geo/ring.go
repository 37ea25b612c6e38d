package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Ring is a closed polygon boundary, a cyclic sequence of arcs where the end
// of each arc is the start of the next. Rings are immutable.
type Ring struct {
	arcs []Arc
}

// NewRing creates a ring from its vertices. A trailing vertex equal to the
// first one is dropped, the ring is closed implicitly. Degenerate
// (zero-length and antipodal) arcs are kept.
func NewRing(pts []s2.Point) (*Ring, error) {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return nil, ErrTooFewVertices
	}

	pts = normalizeAll(pts)
	arcs := make([]Arc, len(pts))
	for i, p := range pts {
		arcs[i] = NewArc(p, pts[(i+1)%len(pts)])
	}
	return &Ring{arcs: arcs}, nil
}

// NumArcs returns the number of arcs/edges.
func (r *Ring) NumArcs() int { return len(r.arcs) }

// NumPoints returns the number of vertices, which equals the number of arcs.
func (r *Ring) NumPoints() int { return len(r.arcs) }

// Arc returns the i-th arc, the index wraps around.
func (r *Ring) Arc(i int) Arc { return r.arcs[r.wrap(i)] }

// Vertex returns the i-th vertex, the index wraps around.
func (r *Ring) Vertex(i int) s2.Point { return r.arcs[r.wrap(i)].Start }

// Points returns a copy of the vertices.
func (r *Ring) Points() []s2.Point {
	pts := make([]s2.Point, len(r.arcs))
	for i, a := range r.arcs {
		pts[i] = a.Start
	}
	return pts
}

// Segments returns all arcs split into pieces with a well-defined rotation
// axis, in ring order. Zero-length arcs are omitted.
func (r *Ring) Segments() []Arc {
	segs := make([]Arc, 0, len(r.arcs))
	for _, a := range r.arcs {
		if a.IsZeroLength() {
			continue
		}
		segs = append(segs, a.Segments()...)
	}
	return segs
}

// Centroid returns the approximate centroid: the normalised sum of the
// vertices. If the vertices are balanced around the origin it falls back to
// the length-weighted sum of the arc midpoints and finally to the north
// pole.
func (r *Ring) Centroid() s2.Point {
	var sum r3.Vector
	for _, a := range r.arcs {
		sum = sum.Add(a.Start.Vector)
	}
	if sum.Norm() > centroidEpsilon {
		return unit(sum)
	}

	sum = r3.Vector{}
	for _, a := range r.arcs {
		if a.IsZeroLength() {
			continue
		}
		sum = sum.Add(a.Midpoint().Mul(a.Length().Radians()))
	}
	if sum.Norm() > centroidEpsilon {
		return unit(sum)
	}
	return s2.PointFromCoords(0, 0, 1)
}

// LeftArea returns the area of the region to the left of the ring, i.e.
// the region a counter-clockwise ring encloses, using the Gauss-Bonnet
// theorem over the turning angles. The result is in [0, 4π].
func (r *Ring) LeftArea() float64 {
	segs := r.Segments()
	if len(segs) < 2 {
		return 0
	}

	var turn float64
	for i, s := range segs {
		next := segs[(i+1)%len(segs)]
		turn += s2.TurnAngle(s.Start, s.End, next.End).Radians()
	}
	return math.Max(0, math.Min(4*math.Pi, 2*math.Pi-turn))
}

// Distance returns the minimum angular distance from p to the boundary.
func (r *Ring) Distance(p s2.Point) s1.Angle {
	min := r.arcs[0].Distance(p)
	for _, a := range r.arcs[1:] {
		min = minAngle(min, a.Distance(p))
	}
	return min
}

func (r *Ring) wrap(i int) int {
	n := len(r.arcs)
	if i %= n; i < 0 {
		i += n
	}
	return i
}

func (*Ring) geometry() {}
