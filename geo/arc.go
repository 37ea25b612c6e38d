package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

type arcState uint8

const (
	arcRegular arcState = iota
	arcZeroLength
	arcAntipodal
)

// Arc is a great-circle arc (geodesic edge) from Start to End, taking the
// shorter way round. Arcs whose endpoints coincide or are antipodal have no
// rotation axis; both states are legal.
type Arc struct {
	Start, End s2.Point

	axis  s2.Point
	state arcState
}

// NewArc creates an arc between two unit vectors.
func NewArc(start, end s2.Point) Arc {
	a := Arc{Start: start, End: end}

	cross := start.Cross(end.Vector)
	if n := cross.Norm(); n > Epsilon {
		a.axis = s2.Point{Vector: cross.Mul(1 / n)}
	} else if start.Dot(end.Vector) > 0 {
		a.state = arcZeroLength
	} else {
		a.state = arcAntipodal
	}
	return a
}

// IsZeroLength reports whether start and end coincide.
func (a Arc) IsZeroLength() bool { return a.state == arcZeroLength }

// IsAntipodal reports whether start and end are antipodal.
func (a Arc) IsAntipodal() bool { return a.state == arcAntipodal }

// Axis returns the unit rotation axis normalize(start × end). The second
// return value is false for zero-length and antipodal arcs.
func (a Arc) Axis() (s2.Point, bool) {
	return a.axis, a.state == arcRegular
}

// Length returns the angular length.
func (a Arc) Length() s1.Angle {
	switch a.state {
	case arcZeroLength:
		return 0
	case arcAntipodal:
		return math.Pi
	}
	return a.Start.Distance(a.End)
}

// Midpoint returns the point halfway along the arc. Antipodal arcs are
// assumed to pass through an arbitrary but fixed point orthogonal to Start.
func (a Arc) Midpoint() s2.Point {
	switch a.state {
	case arcZeroLength:
		return a.Start
	case arcAntipodal:
		return s2.Point{Vector: a.Start.Vector.Ortho()}
	}
	return unit(a.Start.Add(a.End.Vector))
}

// Segments returns the arc split into pieces that each have a well-defined
// rotation axis. Regular and zero-length arcs are returned as-is, antipodal
// arcs are split at their midpoint.
func (a Arc) Segments() []Arc {
	if a.state != arcAntipodal {
		return []Arc{a}
	}
	m := a.Midpoint()
	return []Arc{NewArc(a.Start, m), NewArc(m, a.End)}
}

// Distance returns the minimum angular distance from p to the arc.
func (a Arc) Distance(p s2.Point) s1.Angle {
	switch a.state {
	case arcZeroLength:
		return p.Distance(a.Start)
	case arcAntipodal:
		segs := a.Segments()
		return minAngle(segs[0].Distance(p), segs[1].Distance(p))
	}
	return s2.DistanceFromSegment(p, a.Start, a.End)
}

// DotRange returns the minimum and maximum of dot(x, c) over all points x
// on the arc.
func (a Arc) DotRange(c s2.Point) (min, max float64) {
	switch a.state {
	case arcZeroLength:
		d := a.Start.Dot(c.Vector)
		return d, d
	case arcAntipodal:
		segs := a.Segments()
		min0, max0 := segs[0].DotRange(c)
		min1, max1 := segs[1].DotRange(c)
		return math.Min(min0, min1), math.Max(max0, max1)
	}

	d0, d1 := a.Start.Dot(c.Vector), a.End.Dot(c.Vector)
	min, max = math.Min(d0, d1), math.Max(d0, d1)

	// project c onto the arc's plane; the projection (and its antipode) are
	// the extreme points of the great circle relative to c
	proj := c.Sub(a.axis.Mul(a.axis.Dot(c.Vector)))
	n := proj.Norm()
	if n < Epsilon {
		return min, max
	}
	top := s2.Point{Vector: proj.Mul(1 / n)}
	if a.spans(top) {
		max = n
	}
	if a.spans(s2.Point{Vector: top.Mul(-1)}) {
		min = -n
	}
	return min, max
}

// spans reports whether x, a point on the arc's great circle, lies between
// start and end.
func (a Arc) spans(x s2.Point) bool {
	return a.Start.Cross(x.Vector).Dot(a.axis.Vector) >= 0 &&
		x.Cross(a.End.Vector).Dot(a.axis.Vector) >= 0
}

// Reverse returns the arc from End to Start.
func (a Arc) Reverse() Arc { return NewArc(a.End, a.Start) }

func minAngle(a, b s1.Angle) s1.Angle {
	if a < b {
		return a
	}
	return b
}
