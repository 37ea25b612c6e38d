// Package cookiecut routes candidate geometries to a priority-ordered list
// of partitioning polygons.
//
// Each candidate is partitioned against the first entry; the inside pieces
// are claimed by that entry while the outside pieces are passed on to the
// next one. Overlaps between entries are resolved purely by their order.
package cookiecut

import (
	"github.com/bsm/platecut/partition"
	"github.com/pkg/errors"
)

var (
	// ErrNoBoundary is returned for sources without a boundary ring.
	ErrNoBoundary = errors.New("cookiecut: missing boundary")
	// ErrUnknownKind is returned for sources of an unknown kind.
	ErrUnknownKind = errors.New("cookiecut: unknown source kind")
)

// Kind identifies the kind of reconstruction geometry a source was derived
// from.
type Kind uint8

const (
	// StaticPolygon is a rigidly rotated polygon.
	StaticPolygon Kind = iota + 1
	// ResolvedBoundary is a plate boundary resolved from its topological
	// sections.
	ResolvedBoundary
	// ResolvedNetwork is a deforming network, optionally containing rigid
	// interior blocks.
	ResolvedNetwork
)

func (k Kind) String() string {
	switch k {
	case StaticPolygon:
		return "StaticPolygon"
	case ResolvedBoundary:
		return "ResolvedBoundary"
	case ResolvedNetwork:
		return "ResolvedNetwork"
	}
	return "Unknown"
}

// SortBy determines the order of partitioning entries.
type SortBy uint8

const (
	// SortNone keeps the order of the sources.
	SortNone SortBy = iota
	// SortByDepth orders sources by descending depth in the plate
	// hierarchy.
	SortByDepth
	// SortByArea orders sources by descending boundary area.
	SortByArea
)

// Options configure a Cutter.
type Options struct {
	// The order of the partitioning entries. Default: SortNone.
	SortBy SortBy

	// Include the interior blocks of resolved networks. These are placed
	// ahead of the network boundary.
	IncludeNetworkInteriors bool

	// Options for the partitioners.
	Partition *partition.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.SortBy > SortByArea {
		oo.SortBy = SortNone
	}
	return &oo
}
