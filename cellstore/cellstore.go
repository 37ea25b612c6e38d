package cellstore

import (
	"encoding/binary"
	"errors"
)

var (
	errClosed        = errors.New("cellstore: is closed")
	errInvalidCellID = errors.New("cellstore: invalid cell ID")
	errInvalidClaim  = errors.New("cellstore: invalid claim")
	errNoClaims      = errors.New("cellstore: no claims")
	errBadClaims     = errors.New("cellstore: bad claim encoding")
)

// Claim associates a cell with a partitioning entry.
type Claim struct {
	// Entry is the index of the claiming entry.
	Entry int
	// Interior is set if the cell lies entirely inside the entry's ring,
	// otherwise the cell touches its boundary.
	Interior bool
}

func (c Claim) key() uint64 {
	k := uint64(c.Entry) << 1
	if c.Interior {
		k |= 1
	}
	return k
}

func claimFromKey(k uint64) Claim {
	return Claim{Entry: int(k >> 1), Interior: k&1 == 1}
}

func appendClaims(dst []byte, claims []Claim) []byte {
	for _, c := range claims {
		dst = binary.AppendUvarint(dst, c.key())
	}
	return dst
}

func parseClaims(src []byte) ([]Claim, error) {
	var claims []Claim
	for len(src) != 0 {
		k, n := binary.Uvarint(src)
		if n <= 0 {
			return nil, errBadClaims
		}
		claims = append(claims, claimFromKey(k))
		src = src[n:]
	}
	return claims, nil
}
