// Package pip implements a spherical point-in-polygon classifier.
//
// A point is classified by counting the ring edges crossed by the arc from
// a fixed reference point, the antipode of the ring centroid, to the query
// point. The reference point is outside by definition, so an odd number of
// crossings means inside.
//
// Every such crossing arc lies on a meridian when the centroid is taken as
// the north pole. Rings with many edges are therefore indexed in a lune
// tree: the sphere is recursively split into equal-area lunes around the
// centroid axis, and each leaf keeps only the edges that touch its lune
// together with the range of dot products of those edges with the centroid.
// Most queries are answered by the range alone.
package pip

import (
	"math"

	"github.com/bsm/platecut/geo"
	"github.com/golang/geo/s2"
)

// Classification is the result of a point query.
type Classification uint8

const (
	// Outside means the point lies outside the ring.
	Outside Classification = iota
	// Inside means the point lies inside the ring.
	Inside
)

func (c Classification) String() string {
	if c == Inside {
		return "Inside"
	}
	return "Outside"
}

const (
	// points this close (in terms of 1-|dot|) to the centroid axis have no
	// stable longitude
	polarEpsilon = 1e-12
	// great circles whose axis is this close to the equator pass (almost)
	// through the poles
	axisEpsilon = 1e-12
	// longitude margin applied when assigning edges to lunes
	lonMargin = 1e-9
)

// Options configure a Classifier.
type Options struct {
	// The average number of edges per leaf the lune tree aims for. The tree
	// is only built when a ring has more edges than this. Default: 16.
	MinEdgesPerLeaf int

	// The maximum depth of the lune tree. Default: 12.
	MaxDepth int

	// Disable the lune tree, always scan all edges.
	DisableTree bool
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.MinEdgesPerLeaf < 1 {
		oo.MinEdgesPerLeaf = 16
	}
	if oo.MaxDepth < 1 {
		oo.MaxDepth = 12
	}
	return &oo
}

// --------------------------------------------------------------------

// segment is a non-degenerate piece of a ring edge.
type segment struct {
	a, b           s2.Point
	minDot, maxDot float64 // range of dot products with the centroid

	polar      bool    // touches every lune
	lon, width float64 // longitude interval [lon, lon+width]
}

// overlaps reports whether the segment may touch the lune [lo, hi].
func (s *segment) overlaps(lo, hi float64) bool {
	if s.polar {
		return true
	}
	for _, k := range [...]float64{-2 * math.Pi, 0, 2 * math.Pi} {
		if s.lon+k-lonMargin <= hi && s.lon+k+s.width+lonMargin >= lo {
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------

// Classifier classifies points against a ring. It is immutable once built
// and safe for concurrent use.
type Classifier struct {
	ring *geo.Ring

	centre, ref s2.Point // centroid and its antipode
	u, v        s2.Point // basis of the centroid's equatorial plane

	segs           []segment
	minDot, maxDot float64 // ranges across all segments

	centreClass    Classification
	interiorOnLeft bool
	area           float64

	tree *luneTree
}

// New builds a classifier for a ring.
func New(ring *geo.Ring, o *Options) *Classifier {
	o = o.norm()

	c := &Classifier{ring: ring}
	c.centre = ring.Centroid()
	c.ref = s2.Point{Vector: c.centre.Mul(-1)}
	c.u = s2.Point{Vector: c.centre.Vector.Ortho()}
	c.v = s2.Point{Vector: c.centre.Cross(c.u.Vector).Normalize()}

	c.minDot, c.maxDot = math.Inf(1), math.Inf(-1)
	for _, arc := range ring.Segments() {
		s := c.newSegment(arc)
		c.minDot = math.Min(c.minDot, s.minDot)
		c.maxDot = math.Max(c.maxDot, s.maxDot)
		c.segs = append(c.segs, s)
	}

	// classify the centroid along the meridian through u
	if (c.count(c.segs, c.ref, c.u)+c.count(c.segs, c.u, c.centre))%2 == 1 {
		c.centreClass = Inside
	}

	if depth := treeDepth(len(c.segs), o); depth > 0 && !o.DisableTree {
		c.tree = buildLuneTree(c, depth)
	}

	c.initOrientation()
	return c
}

// Ring returns the classified ring.
func (c *Classifier) Ring() *geo.Ring { return c.ring }

// Centroid returns the ring centroid.
func (c *Classifier) Centroid() s2.Point { return c.centre }

// Reference returns the reference point, which always classifies Outside.
func (c *Classifier) Reference() s2.Point { return c.ref }

// HasTree reports whether a lune tree was built.
func (c *Classifier) HasTree() bool { return c.tree != nil }

// InteriorOnLeft reports whether the interior lies to the left of the ring,
// i.e. whether the ring runs counter-clockwise around its interior when
// viewed from outside the sphere.
func (c *Classifier) InteriorOnLeft() bool { return c.interiorOnLeft }

// Area returns the area of the interior in steradians.
func (c *Classifier) Area() float64 { return c.area }

// Contains reports whether p is inside.
func (c *Classifier) Contains(p s2.Point) bool { return c.Classify(p) == Inside }

// Classify classifies p. Points on the boundary resolve deterministically to
// one side.
func (c *Classifier) Classify(p s2.Point) Classification {
	d := p.Dot(c.centre.Vector)
	if d > c.maxDot {
		return c.centreClass
	} else if d < c.minDot {
		return Outside
	}

	if c.tree != nil && d < 1-polarEpsilon {
		return c.tree.classify(c, p, d)
	}
	return c.classifyScan(c.segs, p, d)
}

// ClassifyScan classifies p by testing every edge, bypassing the lune tree.
func (c *Classifier) ClassifyScan(p s2.Point) Classification {
	return c.classifyScan(c.segs, p, p.Dot(c.centre.Vector))
}

func (c *Classifier) classifyScan(segs []segment, p s2.Point, d float64) Classification {
	var n int
	if d > 1-polarEpsilon {
		// the arc from the reference point is (nearly) antipodal, take the
		// detour via the meridian through u
		n = c.count(segs, c.ref, c.u) + c.count(segs, c.u, p)
	} else if d < -1+polarEpsilon {
		return Outside
	} else {
		n = c.count(segs, c.ref, p)
	}
	return parity(n)
}

// count returns the number of segments crossed by the arc a→b. Shared
// vertices are attributed to exactly one of the adjacent segments, so the
// parity is consistent even when the arc passes through a vertex.
func (c *Classifier) count(segs []segment, a, b s2.Point) int {
	crosser := s2.NewEdgeCrosser(a, b)

	var n int
	for i := range segs {
		if crosser.EdgeOrVertexCrossing(segs[i].a, segs[i].b) {
			n++
		}
	}
	return n
}

func (c *Classifier) newSegment(arc geo.Arc) segment {
	s := segment{a: arc.Start, b: arc.End}
	s.minDot, s.maxDot = arc.DotRange(c.centre)

	axis, _ := arc.Axis()
	tilt := axis.Dot(c.centre.Vector)
	if math.Abs(tilt) < axisEpsilon ||
		math.Abs(arc.Start.Dot(c.centre.Vector)) > 1-polarEpsilon ||
		math.Abs(arc.End.Dot(c.centre.Vector)) > 1-polarEpsilon {
		s.polar = true
		return s
	}

	// longitude increases monotonically along the arc if its axis points
	// towards the centroid
	lonA, lonB := c.longitude(arc.Start), c.longitude(arc.End)
	if tilt > 0 {
		s.lon, s.width = lonA, wrapAngle(lonB-lonA)
	} else {
		s.lon, s.width = lonB, wrapAngle(lonA-lonB)
	}
	if s.width > math.Pi+lonMargin {
		s.polar = true
	}
	return s
}

// longitude returns the longitude of p around the centroid axis in [0, 2π).
func (c *Classifier) longitude(p s2.Point) float64 {
	return wrapAngle(math.Atan2(p.Dot(c.v.Vector), p.Dot(c.u.Vector)))
}

// normal returns the normal of the meridian plane at longitude lon. Points
// with longitudes in (lon, lon+π) have a positive dot product with it.
func (c *Classifier) normal(lon float64) s2.Point {
	sin, cos := math.Sincos(lon)
	return s2.Point{Vector: c.v.Mul(cos).Sub(c.u.Mul(sin))}
}

// initOrientation determines on which side of the ring the interior lies by
// classifying a point just to the left of the longest segment.
func (c *Classifier) initOrientation() {
	var best geo.Arc
	var bestLen float64
	for _, s := range c.segs {
		arc := geo.NewArc(s.a, s.b)
		if l := arc.Length().Radians(); l > bestLen {
			best, bestLen = arc, l
		}
	}

	left := c.ring.LeftArea()
	if bestLen == 0 {
		c.interiorOnLeft = true
		c.area = 0
		return
	}

	// the axis of an arc points to its left
	axis, _ := best.Axis()
	offset := math.Min(1e-7, bestLen/100)
	side := s2.Point{Vector: best.Midpoint().Add(axis.Mul(offset)).Normalize()}

	c.interiorOnLeft = c.Classify(side) == Inside
	if c.interiorOnLeft {
		c.area = left
	} else {
		c.area = 4*math.Pi - left
	}
}

// treeDepth returns the number of tree levels. Each level halves the
// longitude range of its lunes, so depth d gives 2^d leaves. Trees start
// with two levels, i.e. four lunes.
func treeDepth(numSegs int, o *Options) int {
	if numSegs <= o.MinEdgesPerLeaf {
		return 0
	}

	depth := int(math.Ceil(math.Log2(float64(numSegs) / float64(o.MinEdgesPerLeaf))))
	if depth < 2 {
		depth = 2
	}
	if depth > o.MaxDepth {
		depth = o.MaxDepth
	}
	return depth
}

func parity(n int) Classification {
	if n%2 == 1 {
		return Inside
	}
	return Outside
}

func wrapAngle(x float64) float64 {
	if x = math.Mod(x, 2*math.Pi); x < 0 {
		x += 2 * math.Pi
	}
	return x
}
