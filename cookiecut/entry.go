package cookiecut

import (
	"github.com/bsm/platecut/geo"
	"github.com/bsm/platecut/partition"
	"github.com/bsm/platecut/pip"
	"github.com/golang/geo/s2"
)

// Entry is a partitioning entry: an owner with its ring and the classifier
// for that ring. Entries are immutable.
type Entry struct {
	Owner interface{}
	Kind  Kind
	Depth int

	// Interior is set for the interior blocks of resolved networks.
	Interior bool

	part *partition.Partitioner
}

func newEntry(owner interface{}, kind Kind, ring *geo.Ring, depth int, interior bool, o *Options) *Entry {
	return &Entry{
		Owner:    owner,
		Kind:     kind,
		Depth:    depth,
		Interior: interior,
		part:     partition.New(ring, o.Partition),
	}
}

// Ring returns the partitioning ring.
func (e *Entry) Ring() *geo.Ring { return e.part.Classifier().Ring() }

// Classifier returns the point classifier.
func (e *Entry) Classifier() *pip.Classifier { return e.part.Classifier() }

// Area returns the area enclosed by the ring in steradians.
func (e *Entry) Area() float64 { return e.part.Classifier().Area() }

// Contains reports whether the point lies inside the ring.
func (e *Entry) Contains(p s2.Point) bool { return e.part.Classifier().Contains(p) }
