package pip

import (
	"math"

	"github.com/golang/geo/s2"
)

// nodeRef references either an internal node or a leaf of a luneTree.
type nodeRef struct {
	leaf  bool
	index int32
}

// luneNode splits its lune along the meridian plane with the given normal.
// Points with a positive dot product go right.
type luneNode struct {
	normal      s2.Point
	left, right nodeRef
}

// span is a half-open range of segment indices.
type span struct{ start, end int32 }

// luneLeaf holds the segments touching a lune.
type luneLeaf struct {
	spans          []span
	minDot, maxDot float64
}

// luneTree is an arena of nodes and leaves addressed by index.
type luneTree struct {
	nodes  []luneNode
	leaves []luneLeaf
	root   nodeRef
}

func buildLuneTree(c *Classifier, depth int) *luneTree {
	all := make([]int32, len(c.segs))
	for i := range all {
		all[i] = int32(i)
	}

	t := &luneTree{
		nodes:  make([]luneNode, 0, 1<<depth-1),
		leaves: make([]luneLeaf, 0, 1<<depth),
	}
	t.root = t.build(c, 0, 2*math.Pi, all, depth)
	return t
}

func (t *luneTree) build(c *Classifier, lo, hi float64, idx []int32, depth int) nodeRef {
	if depth == 0 {
		return t.addLeaf(c, idx)
	}

	mid := (lo + hi) / 2
	var left, right []int32
	for _, i := range idx {
		s := &c.segs[i]
		if s.overlaps(lo, mid) {
			left = append(left, i)
		}
		if s.overlaps(mid, hi) {
			right = append(right, i)
		}
	}

	pos := len(t.nodes)
	t.nodes = append(t.nodes, luneNode{normal: c.normal(mid)})
	l := t.build(c, lo, mid, left, depth-1)
	r := t.build(c, mid, hi, right, depth-1)
	t.nodes[pos].left, t.nodes[pos].right = l, r

	return nodeRef{index: int32(pos)}
}

func (t *luneTree) addLeaf(c *Classifier, idx []int32) nodeRef {
	leaf := luneLeaf{minDot: math.Inf(1), maxDot: math.Inf(-1)}
	for _, i := range idx {
		s := &c.segs[i]
		leaf.minDot = math.Min(leaf.minDot, s.minDot)
		leaf.maxDot = math.Max(leaf.maxDot, s.maxDot)

		if n := len(leaf.spans); n != 0 && leaf.spans[n-1].end == i {
			leaf.spans[n-1].end++
		} else {
			leaf.spans = append(leaf.spans, span{start: i, end: i + 1})
		}
	}

	t.leaves = append(t.leaves, leaf)
	return nodeRef{leaf: true, index: int32(len(t.leaves) - 1)}
}

// find returns the leaf whose lune contains p.
func (t *luneTree) find(p s2.Point) *luneLeaf {
	ref := t.root
	for !ref.leaf {
		node := &t.nodes[ref.index]
		if p.Dot(node.normal.Vector) > 0 {
			ref = node.right
		} else {
			ref = node.left
		}
	}
	return &t.leaves[ref.index]
}

// classify classifies p, d is the dot product of p with the centroid.
func (t *luneTree) classify(c *Classifier, p s2.Point, d float64) Classification {
	leaf := t.find(p)
	if len(leaf.spans) == 0 {
		return Outside
	} else if d > leaf.maxDot {
		return c.centreClass
	} else if d < leaf.minDot {
		return Outside
	}

	crosser := s2.NewEdgeCrosser(c.ref, p)

	var n int
	for _, sp := range leaf.spans {
		for _, s := range c.segs[sp.start:sp.end] {
			if crosser.EdgeOrVertexCrossing(s.a, s.b) {
				n++
			}
		}
	}
	return parity(n)
}

// numLeaves returns the number of leaves.
func (t *luneTree) numLeaves() int { return len(t.leaves) }
