package cellstore

import (
	"io"

	"github.com/bsm/sntable"
	"github.com/golang/geo/s2"
)

// Reader represents a cellstore reader
type Reader struct {
	t *sntable.Reader
}

// NewReader opens a reader.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	t, err := sntable.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &Reader{t: t}, nil
}

// Claims returns the claims stored for cellID, in ascending entry order.
// It returns nil if the cell is not stored.
func (r *Reader) Claims(cellID s2.CellID) ([]Claim, error) {
	if !cellID.IsValid() {
		return nil, errInvalidCellID
	}

	val, err := r.t.Get(uint64(cellID))
	if err == sntable.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return parseClaims(val)
}
