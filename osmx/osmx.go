// Package osmx loads partitioning sources from OpenStreetMap XML relations.
//
// Each relation with way members describes one owner. Ways with the role
// "outer" are joined into boundary rings, ways with the role "block" into
// the rigid interior blocks of a deforming network.
package osmx

import (
	"github.com/bsm/platecut/geo"
	osm "github.com/glaslos/go-osm"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// Member roles.
const (
	RoleOuter = "outer"
	RoleInner = "inner"
	RoleBlock = "block"
)

// path is a chain of nodes that may or may not be closed.
type path struct {
	Role  string
	Nodes []*osm.Node
}

func (p *path) first() *osm.Node { return p.Nodes[0] }
func (p *path) last() *osm.Node  { return p.Nodes[len(p.Nodes)-1] }

// IsClosed reports whether the first and the last node are the same.
func (p *path) IsClosed() bool { return p.first().ID == p.last().ID }

// IsValid reports whether the path has at least one edge and a known role.
func (p *path) IsValid() bool {
	if len(p.Nodes) < 2 {
		return false
	}
	switch p.Role {
	case RoleOuter, RoleInner, RoleBlock:
		return true
	}
	return false
}

// Join appends o to p if both share an end node. It returns false if the
// paths could not be joined.
func (p *path) Join(o *path) bool {
	if p.Role != o.Role {
		return false
	}

	switch {
	case p.last().ID == o.first().ID:
		// p: a b c d, o: d e f g
		p.Nodes = append(p.Nodes, o.Nodes[1:]...)
	case p.first().ID == o.last().ID:
		// p: d e f g, o: a b c d
		p.Nodes = append(o.Nodes, p.Nodes[1:]...)
	case p.first().ID == o.first().ID:
		// p: d c b a, o: d e f g
		p.Nodes = append(p.reverse(), o.Nodes[1:]...)
	case p.last().ID == o.last().ID:
		// p: a b c d, o: g f e d
		p.Nodes = append(p.Nodes, o.reverse()[1:]...)
	default:
		return false
	}
	return true
}

// joinMode determines how two paths without a shared node are bridged.
type joinMode uint8

const (
	joinAppend       joinMode = iota + 1 // p o
	joinPrepend                          // o p
	joinReverseFirst                     // rev(p) o
	joinReverseLast                      // p rev(o)
)

// Bridge joins o onto p with a new edge.
func (p *path) Bridge(o *path, mode joinMode) {
	if p.Role != o.Role {
		return
	}

	switch mode {
	case joinAppend:
		p.Nodes = append(p.Nodes, o.Nodes...)
	case joinPrepend:
		p.Nodes = append(o.Nodes, p.Nodes...)
	case joinReverseFirst:
		p.Nodes = append(p.reverse(), o.Nodes...)
	case joinReverseLast:
		p.Nodes = append(p.Nodes, o.reverse()...)
	}
}

// Gap returns the shortest distance between the end nodes of two paths and
// the mode needed to bridge it.
func (p *path) Gap(o *path) (s1.Angle, joinMode) {
	gap, mode := s1.InfAngle(), joinMode(0)
	if p.Role != o.Role {
		return gap, mode
	}

	p0, p1 := nodePoint(p.first()), nodePoint(p.last())
	o0, o1 := nodePoint(o.first()), nodePoint(o.last())
	for _, c := range []struct {
		a, b s2.Point
		mode joinMode
	}{
		{p1, o0, joinAppend},
		{p0, o1, joinPrepend},
		{p0, o0, joinReverseFirst},
		{p1, o1, joinReverseLast},
	} {
		if d := c.a.Distance(c.b); d < gap {
			gap, mode = d, c.mode
		}
	}
	return gap, mode
}

// Ring builds a ring from a closed path.
func (p *path) Ring() (*geo.Ring, error) {
	if !p.IsValid() {
		return nil, errors.New("osmx: cannot build ring from an invalid way")
	} else if !p.IsClosed() {
		return nil, errors.New("osmx: cannot build ring from an open way")
	}

	// the closing node repeats the first one
	pts := make([]s2.Point, 0, len(p.Nodes)-1)
	for _, nd := range p.Nodes[1:] {
		pts = append(pts, nodePoint(nd))
	}

	ring, err := geo.NewRing(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "osmx: way from node #%d", p.first().ID)
	}
	return ring, nil
}

func (p *path) reverse() []*osm.Node {
	for i, j := 0, len(p.Nodes)-1; i < j; i, j = i+1, j-1 {
		p.Nodes[i], p.Nodes[j] = p.Nodes[j], p.Nodes[i]
	}
	return p.Nodes
}

func nodePoint(nd *osm.Node) s2.Point {
	return geo.PointFromDegrees(nd.Lat, nd.Lng)
}

// --------------------------------------------------------------------

type pathSlice []*path

// Reduce joins paths into closed loops. It modifies the paths in place.
func (s pathSlice) Reduce() pathSlice {
	for i, p := range s {
		if p != nil {
			s.joinShared(p, i+1)
		}
	}
	s = s.compact(false)

	for i, p := range s {
		if p != nil && !p.IsClosed() {
			s.joinNearest(p, i+1)
		}
	}
	return s.compact(true)
}

// compact removes nils and optionally closes open paths.
func (s pathSlice) compact(close bool) pathSlice {
	res := s[:0]
	for _, p := range s {
		if p == nil {
			continue
		}
		if close && !p.IsClosed() {
			p.Nodes = append(p.Nodes, p.Nodes[0])
		}
		res = append(res, p)
	}
	return res
}

func (s pathSlice) joinShared(p *path, off int) {
	for joined := true; joined; {
		joined = false
		for i, o := range s[off:] {
			if o != nil && p.Join(o) {
				s[off+i] = nil
				joined = true
			}
		}
	}
}

func (s pathSlice) joinNearest(p *path, off int) {
	for {
		pos, mode, gap := -1, joinMode(0), s1.InfAngle()
		for i, o := range s[off:] {
			if o == nil || o.IsClosed() {
				continue
			}
			if d, m := p.Gap(o); d < gap {
				pos, mode, gap = off+i, m, d
			}
		}
		if pos < 0 {
			return
		}

		p.Bridge(s[pos], mode)
		s[pos] = nil
	}
}
