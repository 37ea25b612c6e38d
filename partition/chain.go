package partition

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ringPos locates a split point on the partitioning ring: it either
// coincides with the start of segment seg or lies in its interior.
type ringPos struct {
	seg    int
	vertex bool
}

// chain is a circular, doubly linked list of candidate points. Split nodes
// are points where the candidate meets the partitioning boundary; they are
// either inserted between vertices or mark a vertex that touches the ring.
type chain struct {
	s2.Point
	Split  bool
	Vertex bool
	At     ringPos

	next, prev *chain
}

// newChain creates a chain from candidate points.
func newChain(pts []s2.Point) *chain {
	c := &chain{Point: pts[0], Vertex: true}
	c.next = c
	c.prev = c

	d := c
	for _, p := range pts[1:] {
		d = d.push(p)
		d.Vertex = true
	}
	return c
}

// Next returns the next node.
func (c *chain) Next() *chain { return c.next }

// Prev returns the previous node.
func (c *chain) Prev() *chain { return c.prev }

// Mark flags the node as a split point, an existing position is kept.
func (c *chain) Mark(at ringPos) {
	if !c.Split {
		c.Split = true
		c.At = at
	}
}

// PushSplit inserts a split point after this vertex, ordered by distance
// along the edge. Points within tol of an existing node are merged into it.
// It returns the node the split was recorded on.
func (c *chain) PushSplit(p s2.Point, at ringPos, tol s1.Angle) *chain {
	if c.Distance(p) <= tol {
		c.Mark(at)
		return c
	}

	e := c.Next()
	if e.Distance(p) <= tol {
		e.Mark(at)
		return e
	}
	if !e.Vertex && c.Distance(e.Point) < c.Distance(p) {
		return e.PushSplit(p, at, tol)
	}

	d := c.push(p)
	d.Mark(at)
	return d
}

// Walk returns the nodes from c up to and including last.
func (c *chain) Walk(last *chain) []*chain {
	nodes := []*chain{c}
	for d := c; d != last; {
		d = d.Next()
		nodes = append(nodes, d)
	}
	return nodes
}

// Cycle returns all nodes starting at c, followed by c again.
func (c *chain) Cycle() []*chain {
	nodes := []*chain{c}
	for d := c.Next(); d != c; d = d.Next() {
		nodes = append(nodes, d)
	}
	return append(nodes, c)
}

// FindSplit returns the first split node at or after c, or nil.
func (c *chain) FindSplit() *chain {
	for d := c; ; {
		if d.Split {
			return d
		}
		if d = d.Next(); d == c {
			break
		}
	}
	return nil
}

// push inserts a point after this one and returns the new node
func (c *chain) push(p s2.Point) *chain {
	e := c.Next()
	d := &chain{Point: p}
	c.next = d
	d.prev = c
	d.next = e
	e.prev = d
	return d
}
