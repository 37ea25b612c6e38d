package cookiecut

import (
	"github.com/bsm/platecut/geo"
	"github.com/bsm/platecut/pip"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Partition holds the pieces claimed by an entry.
type Partition struct {
	Entry  *Entry
	Inside []geo.Geometry
}

// Result is the result of a cut.
type Result struct {
	// Partitions in priority order, entries without claimed pieces are
	// omitted.
	Partitions []Partition

	// Unclaimed pieces, outside of all entries.
	Unclaimed []geo.Geometry
}

// NumPoints returns the total number of points across all pieces.
func (r *Result) NumPoints() int {
	n := geo.CountPoints(r.Unclaimed)
	for _, p := range r.Partitions {
		n += geo.CountPoints(p.Inside)
	}
	return n
}

// --------------------------------------------------------------------

// Cutter cuts geometries against an ordered list of partitioning entries.
// It is immutable and safe for concurrent use.
type Cutter struct {
	entries []*Entry
}

// New creates a cutter from sources.
func New(sources []Source, o *Options) (*Cutter, error) {
	o = o.norm()

	groups := make([][]*Entry, 0, len(sources))
	for i := range sources {
		group, err := sources[i].entries(o)
		if err != nil {
			return nil, errors.Wrapf(err, "cookiecut: source %d", i)
		}
		groups = append(groups, group)
	}

	// groups are ordered by their boundary, the last entry
	switch o.SortBy {
	case SortByDepth:
		slices.SortStableFunc(groups, func(a, b []*Entry) int {
			return b[len(b)-1].Depth - a[len(a)-1].Depth
		})
	case SortByArea:
		slices.SortStableFunc(groups, func(a, b []*Entry) int {
			x, y := a[len(a)-1].Area(), b[len(b)-1].Area()
			if x > y {
				return -1
			} else if x < y {
				return 1
			}
			return 0
		})
	}

	c := new(Cutter)
	for _, group := range groups {
		c.entries = append(c.entries, group...)
	}

	glog.V(1).Infof("cookiecut: %d partitioning entries from %d sources", len(c.entries), len(sources))
	return c, nil
}

// Entries returns the partitioning entries in priority order.
func (c *Cutter) Entries() []*Entry { return c.entries }

// HasPartitioningEntries reports whether there are any entries.
func (c *Cutter) HasPartitioningEntries() bool { return len(c.entries) != 0 }

// PartitionPoint returns the first entry containing the point.
func (c *Cutter) PartitionPoint(p s2.Point) (*Entry, bool) {
	for _, e := range c.entries {
		if e.Contains(p) {
			return e, true
		}
	}
	return nil, false
}

// Cut partitions geometries. Each entry claims the inside pieces of what
// remains outside of all preceding entries.
func (c *Cutter) Cut(geoms []geo.Geometry) (*Result, error) {
	res := new(Result)
	outside := append(make([]geo.Geometry, 0, len(geoms)), geoms...)
	var next []geo.Geometry

	for i, e := range c.entries {
		if len(outside) == 0 {
			glog.V(2).Infof("cookiecut: stopped early, %d of %d entries left unused", len(c.entries)-i, len(c.entries))
			break
		}

		var inside []geo.Geometry
		next = next[:0]
		for j, g := range outside {
			pr, err := e.part.Partition(g)
			if err != nil {
				return nil, errors.Wrapf(err, "cookiecut: entry %d, geometry %d", i, j)
			}
			for _, pc := range pr.Pieces {
				if pc.Class == pip.Inside {
					inside = append(inside, pc.Geometry)
				} else {
					next = append(next, pc.Geometry)
				}
			}
		}
		if len(inside) != 0 {
			res.Partitions = append(res.Partitions, Partition{Entry: e, Inside: inside})
		}
		outside, next = next, outside
	}

	res.Unclaimed = outside
	glog.V(1).Infof("cookiecut: cut %d geometries into %d partitions, %d pieces unclaimed", len(geoms), len(res.Partitions), len(res.Unclaimed))
	return res, nil
}
