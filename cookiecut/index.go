package cookiecut

import (
	"bytes"
	"io"

	"github.com/bsm/platecut/cellstore"
	"github.com/bsm/platecut/geo"
	"github.com/bsm/sntable"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// IndexOptions configure a PointIndex.
type IndexOptions struct {
	// The maximum cell level. Cells touching a boundary are stored at this
	// level. Default: 8.
	MaxLevel int

	// An optional temporary directory for sorting. Default: os.TempDir()
	TempDir string

	// Options for the cell store.
	Store *sntable.WriterOptions
}

func (o *IndexOptions) norm() *IndexOptions {
	var oo IndexOptions
	if o != nil {
		oo = *o
	}

	if oo.MaxLevel < 1 {
		oo.MaxLevel = 8
	} else if oo.MaxLevel > s2.MaxLevel {
		oo.MaxLevel = s2.MaxLevel
	}
	return &oo
}

// PointIndex speeds up point lookups against many entries. Each entry is
// approximated by cells which either lie entirely inside its ring or touch
// its boundary; only the latter require a point classification.
type PointIndex struct {
	entries  []*Entry
	store    *cellstore.Reader
	maxLevel int
	numCells int
}

// BuildIndex builds a point index over the partitioning entries.
func (c *Cutter) BuildIndex(o *IndexOptions) (*PointIndex, error) {
	o = o.norm()

	sorter := cellstore.NewSorter(&cellstore.SorterOptions{TempDir: o.TempDir})
	defer sorter.Close()

	var numClaims int
	for i, e := range c.entries {
		var err error
		geo.FitRingDo(e.Ring(), o.MaxLevel, e.Contains, func(cellID s2.CellID, interior bool) bool {
			err = sorter.Append(cellID, cellstore.Claim{Entry: i, Interior: interior})
			numClaims++
			return err == nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "cookiecut: index entry %d", i)
		}
	}

	iter, err := sorter.Sort()
	if err != nil {
		return nil, errors.Wrap(err, "cookiecut: sort index")
	}
	defer iter.Close()

	buf := new(bytes.Buffer)
	w := cellstore.NewWriter(buf, o.Store)

	var numCells int
	for {
		cellID, claims, err := iter.NextEntry()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "cookiecut: sort index")
		}

		if err := w.Append(cellID, claims); err != nil {
			return nil, errors.Wrap(err, "cookiecut: write index")
		}
		numCells++
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "cookiecut: write index")
	}

	store, err := cellstore.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, errors.Wrap(err, "cookiecut: open index")
	}

	glog.V(1).Infof("cookiecut: indexed %d entries with %d claims in %d cells (%d bytes)", len(c.entries), numClaims, numCells, buf.Len())
	return &PointIndex{
		entries:  c.entries,
		store:    store,
		maxLevel: o.MaxLevel,
		numCells: numCells,
	}, nil
}

// NumCells returns the number of indexed cells.
func (x *PointIndex) NumCells() int { return x.numCells }

// Lookup returns the first entry containing the point. It returns the same
// entry as Cutter.PartitionPoint.
func (x *PointIndex) Lookup(p s2.Point) (*Entry, bool, error) {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromPoint(p))

	best := len(x.entries)
	for level := 0; level <= x.maxLevel; level++ {
		claims, err := x.store.Claims(leaf.Parent(level))
		if err != nil {
			return nil, false, err
		}

		// claims are ordered by entry
		for _, c := range claims {
			if c.Entry >= best {
				break
			}
			if c.Interior || x.entries[c.Entry].Contains(p) {
				best = c.Entry
				break
			}
		}
	}

	if best < len(x.entries) {
		return x.entries[best], true, nil
	}
	return nil, false, nil
}
