package cellstore

import (
	"encoding/binary"
	"io"

	"github.com/bsm/extsort"
	"github.com/golang/geo/s2"
)

// SorterOptions define Sorter specific options.
type SorterOptions struct {
	// An optional temporary directory. Default: os.TempDir()
	TempDir string
}

func (o *SorterOptions) norm() *SorterOptions {
	var oo SorterOptions
	if o != nil {
		oo = *o
	}
	return &oo
}

// Sorter allows to pre-sort claims to avoid out-of-order appends to Writer instances.
type Sorter struct {
	x *extsort.Sorter
	t []byte
}

// NewSorter creates a sorter.
func NewSorter(o *SorterOptions) *Sorter {
	o = o.norm()
	return &Sorter{
		x: extsort.New(&extsort.Options{WorkDir: o.TempDir}),
		t: make([]byte, 16),
	}
}

// Append appends a claim for a cell to the sorter.
func (s *Sorter) Append(cellID s2.CellID, claim Claim) error {
	if !cellID.IsValid() {
		return errInvalidCellID
	} else if claim.Entry < 0 {
		return errInvalidClaim
	}

	// big-endian keys sort claims by cell, then by entry
	binary.BigEndian.PutUint64(s.t[0:], uint64(cellID))
	binary.BigEndian.PutUint64(s.t[8:], claim.key())
	return s.x.Append(s.t[:16])
}

// Sort sorts appended claims and returns an iterator.
func (s *Sorter) Sort() (*SorterIterator, error) {
	iter, err := s.x.Sort()
	if err != nil {
		return nil, err
	}
	return &SorterIterator{it: iter}, nil
}

// Close closes the sorter and releases all resources.
func (s *Sorter) Close() error {
	return s.x.Close()
}

// SorterIterator iterates over sorted results
type SorterIterator struct {
	it *extsort.Iterator

	ok     bool      // a claim is buffered
	nextID s2.CellID // cell ID of the buffered claim
	next   Claim     // the buffered claim

	claims []Claim
}

// NextEntry reads the next cell with all its claims, duplicates are
// removed. The returned slice is reused by subsequent calls. This function
// will return io.EOF if no more entries can be read.
func (i *SorterIterator) NextEntry() (s2.CellID, []Claim, error) {
	if !i.ok && !i.read() {
		if err := i.it.Err(); err != nil {
			return 0, nil, err
		}
		return 0, nil, io.EOF
	}

	cellID := i.nextID
	i.claims = append(i.claims[:0], i.next)
	for i.read() && i.nextID == cellID {
		if i.claims[len(i.claims)-1] != i.next {
			i.claims = append(i.claims, i.next)
		}
	}

	if err := i.it.Err(); err != nil {
		return 0, nil, err
	}
	return cellID, i.claims, nil
}

// Close closes iterator and releases resources.
func (i *SorterIterator) Close() error {
	return i.it.Close()
}

func (i *SorterIterator) read() bool {
	if i.ok = i.it.Next(); i.ok {
		data := i.it.Data()
		i.nextID = s2.CellID(binary.BigEndian.Uint64(data[0:]))
		i.next = claimFromKey(binary.BigEndian.Uint64(data[8:]))
	}
	return i.ok
}
