package cookiecut

import (
	"github.com/bsm/platecut/geo"
)

// Block is a rigid block inside a resolved network.
type Block struct {
	Owner interface{}
	Ring  *geo.Ring
}

// Source describes a partitioning polygon and its owner. The owner is an
// opaque handle, typically a plate identifier, and is never interpreted.
type Source struct {
	Kind  Kind
	Owner interface{}

	// The boundary ring.
	Boundary *geo.Ring

	// Interior blocks, only considered for ResolvedNetwork sources.
	Interiors []Block

	// Depth in the plate hierarchy, used by SortByDepth.
	Depth int
}

// entries expands the source into its partitioning entries, in priority
// order.
func (s *Source) entries(o *Options) ([]*Entry, error) {
	if s.Boundary == nil {
		return nil, ErrNoBoundary
	}

	switch s.Kind {
	case StaticPolygon, ResolvedBoundary:
		return []*Entry{newEntry(s.Owner, s.Kind, s.Boundary, s.Depth, false, o)}, nil
	case ResolvedNetwork:
		var res []*Entry
		if o.IncludeNetworkInteriors {
			for _, b := range s.Interiors {
				if b.Ring == nil {
					return nil, ErrNoBoundary
				}
				res = append(res, newEntry(b.Owner, s.Kind, b.Ring, s.Depth, true, o))
			}
		}
		return append(res, newEntry(s.Owner, s.Kind, s.Boundary, s.Depth, false, o)), nil
	}
	return nil, ErrUnknownKind
}
