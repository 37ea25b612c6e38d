package cellstore

import (
	"fmt"
	"io"

	"github.com/bsm/sntable"
	"github.com/golang/geo/s2"
)

// Writer represents a cellstore Writer
type Writer struct {
	t *sntable.Writer

	last s2.CellID // the last appended cell
	buf  []byte    // value buffer
}

// NewWriter wraps a writer and returns a cellstore Writer
func NewWriter(w io.Writer, o *sntable.WriterOptions) *Writer {
	return &Writer{t: sntable.NewWriter(w, o)}
}

// Append appends the claims of a cell to the store. Cells must be appended
// in ascending order.
func (w *Writer) Append(cellID s2.CellID, claims []Claim) error {
	if w.t == nil {
		return errClosed
	}
	if !cellID.IsValid() {
		return errInvalidCellID
	} else if w.last >= cellID {
		return fmt.Errorf("cellstore: attempted an out-of-order append, %v must be > %v", cellID, w.last)
	} else if len(claims) == 0 {
		return errNoClaims
	}
	for _, c := range claims {
		if c.Entry < 0 {
			return errInvalidClaim
		}
	}

	w.buf = appendClaims(w.buf[:0], claims)
	if err := w.t.Append(uint64(cellID), w.buf); err != nil {
		return err
	}
	w.last = cellID
	return nil
}

// Close closes the writer
func (w *Writer) Close() error {
	if w.t == nil {
		return errClosed
	}

	err := w.t.Close()
	w.t = nil
	return err
}
