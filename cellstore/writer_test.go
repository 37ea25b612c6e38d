package cellstore

import (
	"bytes"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/sntable"
	"github.com/golang/geo/s2"
)

var _ = Describe("Writer", func() {
	var buf *bytes.Buffer
	var subject *Writer
	var cellID = s2.CellID(1317624576600000001)
	var claims = []Claim{{Entry: 3, Interior: true}}

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		subject = NewWriter(buf, seedOptions)
	})

	AfterEach(func() {
		_ = subject.Close()
	})

	It("should write empty", func() {
		Expect(subject.Close()).To(Succeed())
		Expect(buf.Len()).NotTo(BeZero())
		Expect(subject.Close()).To(MatchError(errClosed))
		Expect(subject.Append(cellID, claims)).To(MatchError(errClosed))
	})

	It("should prevent out-of-order writes", func() {
		Expect(subject.Append(cellID, claims)).To(Succeed())
		Expect(subject.Append(cellID, claims)).To(MatchError(`cellstore: attempted an out-of-order append, 0/210210210210210201302022030000 must be > 0/210210210210210201302022030000`))
		Expect(subject.Append(cellID-2, claims)).To(MatchError(`cellstore: attempted an out-of-order append, 0/210210210210210201302022023333 must be > 0/210210210210210201302022030000`))
		Expect(subject.Append(cellID+2, claims)).To(Succeed())
	})

	It("should prevent invalid writes", func() {
		Expect(subject.Append(cellID-1, claims)).To(MatchError(errInvalidCellID))
		Expect(subject.Append(cellID+1, claims)).To(MatchError(errInvalidCellID))
		Expect(subject.Append(cellID, nil)).To(MatchError(errNoClaims))
		Expect(subject.Append(cellID, []Claim{{Entry: -1}})).To(MatchError(errInvalidClaim))
	})

	It("should write many cells", func() {
		for i := 0; i < 10000; i++ {
			Expect(subject.Append(seedCell(i), seedClaims(i))).To(Succeed())
		}
		Expect(subject.Close()).To(Succeed())
		Expect(buf.Len()).To(BeNumerically(">", 2048))
	})

	It("should compress", func() {
		plain := new(bytes.Buffer)
		w := NewWriter(plain, &sntable.WriterOptions{Compression: sntable.NoCompression})
		for i := 0; i < 10000; i++ {
			Expect(subject.Append(seedCell(i), seedClaims(i))).To(Succeed())
			Expect(w.Append(seedCell(i), seedClaims(i))).To(Succeed())
		}
		Expect(subject.Close()).To(Succeed())
		Expect(w.Close()).To(Succeed())
		Expect(buf.Len()).To(BeNumerically("<", plain.Len()))
	})
})
