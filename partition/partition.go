// Package partition splits candidate geometries against a partitioning ring
// into the pieces that lie inside and outside of it.
//
// The candidate is first split at every point where it meets the ring
// boundary. Each resulting sub-arc is then classified from the arrangement
// at one of its bounding split points: the direction the sub-arc leaves the
// split point is compared against the two ring edges meeting there. Only
// candidates that never meet the boundary need a point classification.
package partition

import (
	"errors"
	"math"

	"github.com/bsm/platecut/geo"
	"github.com/bsm/platecut/pip"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ErrUnsupportedGeometry is returned for geometries that cannot be
// partitioned.
var ErrUnsupportedGeometry = errors.New("partition: unsupported geometry")

// Options configure a Partitioner.
type Options struct {
	// Points closer than Tolerance (in radians) to the partitioning boundary
	// are considered to touch it. Default: 1e-10.
	Tolerance float64

	// Options for the point classifier, used when a partitioner is created
	// from a ring.
	Classifier *pip.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.Tolerance <= 0 {
		oo.Tolerance = 1e-10
	}
	return &oo
}

// Piece is a classified part of a candidate geometry.
type Piece struct {
	geo.Geometry
	Class pip.Classification
}

// Result holds the pieces of a partitioned geometry, in candidate order.
type Result struct {
	Pieces []Piece
}

// Inside returns the inside pieces.
func (r *Result) Inside() []geo.Geometry { return r.filter(pip.Inside) }

// Outside returns the outside pieces.
func (r *Result) Outside() []geo.Geometry { return r.filter(pip.Outside) }

func (r *Result) filter(class pip.Classification) []geo.Geometry {
	var res []geo.Geometry
	for _, p := range r.Pieces {
		if p.Class == class {
			res = append(res, p.Geometry)
		}
	}
	return res
}

// --------------------------------------------------------------------

// Partitioner partitions candidates against a single ring. It is safe for
// concurrent use.
type Partitioner struct {
	cls  *pip.Classifier
	segs []geo.Arc
	tol  s1.Angle
}

// New creates a partitioner for a ring.
func New(ring *geo.Ring, o *Options) *Partitioner {
	o = o.norm()
	return NewWithClassifier(pip.New(ring, o.Classifier), o)
}

// NewWithClassifier creates a partitioner from an existing classifier.
func NewWithClassifier(cls *pip.Classifier, o *Options) *Partitioner {
	o = o.norm()
	return &Partitioner{
		cls:  cls,
		segs: cls.Ring().Segments(),
		tol:  s1.Angle(o.Tolerance),
	}
}

// Classifier returns the underlying point classifier.
func (p *Partitioner) Classifier() *pip.Classifier { return p.cls }

// Partition partitions a candidate geometry.
func (p *Partitioner) Partition(g geo.Geometry) (*Result, error) {
	switch c := g.(type) {
	case *geo.Polyline:
		return p.PartitionPolyline(c)
	case *geo.Ring:
		return p.PartitionPolygon(c)
	case *geo.Multipoint:
		return p.PartitionMultipoint(c), nil
	}
	return nil, ErrUnsupportedGeometry
}

// PartitionPolyline splits a polyline into inside and outside pieces.
// Consecutive pieces on the same side are merged.
func (p *Partitioner) PartitionPolyline(line *geo.Polyline) (*Result, error) {
	pts := line.Points()
	head := newChain(pts)
	last := p.splitAll(head, len(pts)-1, true)

	nodes := head.Walk(last)
	if !hasSplit(nodes) {
		return &Result{Pieces: []Piece{{Geometry: line, Class: p.classifySample(pts)}}}, nil
	}
	return buildResult(mergePieces(p.classifyPieces(nodes)))
}

// PartitionPolygon partitions a polygon. A polygon that does not cross the
// partitioning boundary is returned whole, otherwise its boundary is split
// into open inside and outside pieces.
func (p *Partitioner) PartitionPolygon(ring *geo.Ring) (*Result, error) {
	pts := ring.Points()
	head := newChain(pts)
	p.splitAll(head, len(pts), false)

	start := head.FindSplit()
	if start == nil {
		return &Result{Pieces: []Piece{{Geometry: ring, Class: p.classifySample(pts)}}}, nil
	}

	pieces := mergePieces(p.classifyPieces(start.Cycle()))
	if len(pieces) > 1 && pieces[0].class == pieces[len(pieces)-1].class {
		tail := pieces[len(pieces)-1]
		pieces[0].nodes = append(tail.nodes, pieces[0].nodes[1:]...)
		pieces = pieces[:len(pieces)-1]
	}
	if len(pieces) == 1 {
		return &Result{Pieces: []Piece{{Geometry: ring, Class: pieces[0].class}}}, nil
	}
	return buildResult(pieces)
}

// PartitionMultipoint sorts points by classification.
func (p *Partitioner) PartitionMultipoint(mp *geo.Multipoint) *Result {
	var inside, outside []s2.Point
	for _, pt := range mp.Points() {
		if p.cls.Classify(pt) == pip.Inside {
			inside = append(inside, pt)
		} else {
			outside = append(outside, pt)
		}
	}

	// NewMultipoint only fails on empty input
	res := new(Result)
	if len(inside) != 0 {
		g, _ := geo.NewMultipoint(inside)
		res.Pieces = append(res.Pieces, Piece{Geometry: g, Class: pip.Inside})
	}
	if len(outside) != 0 {
		g, _ := geo.NewMultipoint(outside)
		res.Pieces = append(res.Pieces, Piece{Geometry: g, Class: pip.Outside})
	}
	return res
}

// --------------------------------------------------------------------

// splitAll inserts the split points of the first numEdges candidate edges
// into the chain. It returns the node of the last candidate vertex.
func (p *Partitioner) splitAll(head *chain, numEdges int, open bool) *chain {
	vertices := head.Cycle()
	vertices = vertices[:len(vertices)-1]

	for i := 0; i < numEdges; i++ {
		p.split(vertices[i], vertices[(i+1)%len(vertices)])
	}
	if open {
		p.touch(vertices[len(vertices)-1])
	}
	return vertices[len(vertices)-1]
}

// split records where the edge from vertex node v to the next vertex node w
// meets the ring boundary.
func (p *Partitioner) split(v, w *chain) {
	p.touch(v)

	edge := geo.NewArc(v.Point, w.Point)
	if edge.IsZeroLength() {
		return
	}

	for _, sub := range edge.Segments() {
		crosser := s2.NewEdgeCrosser(sub.Start, sub.End)
		for j, seg := range p.segs {
			if p.collinear(sub, seg) {
				continue
			}
			if crosser.CrossingSign(seg.Start, seg.End) == s2.Cross {
				x := s2.Intersection(sub.Start, sub.End, seg.Start, seg.End)
				x, at := p.locate(x, j)
				v.PushSplit(x, at, p.tol)
			}
		}
	}

	// ring vertices on the edge interior
	for j, seg := range p.segs {
		x := seg.Start
		if edge.Distance(x) > p.tol || v.Distance(x) <= p.tol || w.Distance(x) <= p.tol {
			continue
		}
		v.PushSplit(x, ringPos{seg: j, vertex: true}, p.tol)
	}
}

// collinear reports whether edge lies on the great circle of ring segment
// seg. Overlaps are split at the touching vertices only.
func (p *Partitioner) collinear(edge, seg geo.Arc) bool {
	axis, ok := seg.Axis()
	if !ok {
		return false
	}
	tol := p.tol.Radians()
	return math.Abs(edge.Start.Dot(axis.Vector)) <= tol && math.Abs(edge.End.Dot(axis.Vector)) <= tol
}

// touch marks vertex node v as a split if it lies on the ring boundary.
func (p *Partitioner) touch(v *chain) {
	for j, seg := range p.segs {
		if seg.Distance(v.Point) <= p.tol {
			_, at := p.locate(v.Point, j)
			v.Mark(at)
			return
		}
	}
}

// locate returns the position of x on ring segment j, snapping x to the
// segment endpoints.
func (p *Partitioner) locate(x s2.Point, j int) (s2.Point, ringPos) {
	seg := p.segs[j]
	if x.Distance(seg.Start) <= p.tol {
		return seg.Start, ringPos{seg: j, vertex: true}
	}
	if x.Distance(seg.End) <= p.tol {
		next := (j + 1) % len(p.segs)
		return p.segs[next].Start, ringPos{seg: next, vertex: true}
	}
	return x, ringPos{seg: j}
}

// classifySample classifies a candidate that does not meet the boundary.
// The first vertex, or failing that edge midpoint, clear of the boundary is
// used as a sample.
func (p *Partitioner) classifySample(pts []s2.Point) pip.Classification {
	ring := p.cls.Ring()
	for _, pt := range pts {
		if ring.Distance(pt) > p.tol {
			return p.cls.Classify(pt)
		}
	}
	for i := 0; i+1 < len(pts); i++ {
		if m := geo.NewArc(pts[i], pts[i+1]).Midpoint(); ring.Distance(m) > p.tol {
			return p.cls.Classify(m)
		}
	}
	return p.cls.Classify(pts[0])
}

// --------------------------------------------------------------------

type piece struct {
	nodes []*chain
	class pip.Classification
}

// classifyPieces cuts nodes at every split and classifies the sub-arcs.
func (p *Partitioner) classifyPieces(nodes []*chain) []piece {
	var pieces []piece

	start := 0
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Split || i == len(nodes)-1 {
			sub := nodes[start : i+1]
			pieces = append(pieces, piece{nodes: sub, class: p.classifyPiece(sub)})
			start = i
		}
	}
	return pieces
}

func (p *Partitioner) classifyPiece(nodes []*chain) pip.Classification {
	first, last := nodes[0], nodes[len(nodes)-1]

	// sub-arcs running along the boundary
	if len(nodes) == 2 && first.Split && last.Split {
		m := geo.NewArc(first.Point, last.Point).Midpoint()
		if p.cls.Ring().Distance(m) <= p.tol {
			return pip.Inside
		}
	}

	if first.Split {
		for _, n := range nodes[1:] {
			if n.Point != first.Point {
				return p.side(first, n.Point)
			}
		}
	}
	if last.Split {
		for i := len(nodes) - 2; i >= 0; i-- {
			if n := nodes[i]; n.Point != last.Point {
				return p.side(last, n.Point)
			}
		}
	}

	// zero-length sub-arcs sit on the boundary
	return pip.Inside
}

// side classifies the direction from split x towards q against the ring
// edges meeting at x.
func (p *Partitioner) side(x *chain, q s2.Point) pip.Classification {
	n := len(p.segs)

	seg := p.segs[x.At.seg]
	a := seg.Start
	if x.At.vertex {
		a = p.segs[(x.At.seg+n-1)%n].Start
	}
	c := seg.End

	var left bool
	if p.cls.InteriorOnLeft() {
		left = s2.OrderedCCW(c, q, a, x.Point)
	} else {
		left = s2.OrderedCCW(a, q, c, x.Point)
	}
	if left {
		return pip.Inside
	}
	return pip.Outside
}

// mergePieces joins consecutive pieces of the same class.
func mergePieces(pieces []piece) []piece {
	merged := pieces[:0:0]
	for _, pc := range pieces {
		if n := len(merged); n != 0 && merged[n-1].class == pc.class {
			merged[n-1].nodes = append(merged[n-1].nodes, pc.nodes[1:]...)
			continue
		}
		pc.nodes = append([]*chain(nil), pc.nodes...)
		merged = append(merged, pc)
	}
	return merged
}

func buildResult(pieces []piece) (*Result, error) {
	res := &Result{Pieces: make([]Piece, 0, len(pieces))}
	for _, pc := range pieces {
		pts := make([]s2.Point, len(pc.nodes))
		for i, n := range pc.nodes {
			pts[i] = n.Point
		}

		line, err := geo.NewPolyline(pts)
		if err != nil {
			return nil, err
		}
		res.Pieces = append(res.Pieces, Piece{Geometry: line, Class: pc.class})
	}
	return res, nil
}

func hasSplit(nodes []*chain) bool {
	for _, n := range nodes {
		if n.Split {
			return true
		}
	}
	return false
}
