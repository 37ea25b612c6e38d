package cookiecut

import (
	"math/rand"

	"github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/platecut/geo"
	"github.com/bsm/sntable"
	"github.com/golang/geo/s2"
)

var _ = ginkgo.Describe("PointIndex", func() {
	var cutter *Cutter

	ginkgo.BeforeEach(func() {
		var err error
		cutter, err = New([]Source{
			{Kind: StaticPolygon, Owner: "centre", Boundary: boxRing(0, 20, -20, 20)},
			{Kind: StaticPolygon, Owner: "west", Boundary: boxRing(-30, 30, -45, 0)},
			{Kind: ResolvedBoundary, Owner: "east", Boundary: boxRing(-30, 30, 0, 45)},
			{Kind: ResolvedBoundary, Owner: "south", Boundary: boxRing(-85, -60, -170, -90)},
		}, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	ginkgo.It("should normalize options", func() {
		Expect((*IndexOptions)(nil).norm().MaxLevel).To(Equal(8))
		Expect((&IndexOptions{MaxLevel: 40}).norm().MaxLevel).To(Equal(s2.MaxLevel))
		Expect((&IndexOptions{MaxLevel: 5}).norm().MaxLevel).To(Equal(5))
	})

	ginkgo.It("should build", func() {
		index, err := cutter.BuildIndex(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(index.NumCells()).To(BeNumerically(">", 100))

		coarse, err := cutter.BuildIndex(&IndexOptions{MaxLevel: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(coarse.NumCells()).To(BeNumerically("<", index.NumCells()))
	})

	ginkgo.It("should lookup", func() {
		index, err := cutter.BuildIndex(&IndexOptions{
			MaxLevel: 7,
			Store:    &sntable.WriterOptions{BlockSize: 1024, Compression: sntable.NoCompression},
		})
		Expect(err).NotTo(HaveOccurred())

		e, ok, err := index.Lookup(geo.PointFromDegrees(10, -10))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(e.Owner).To(Equal("centre"))

		e, ok, err = index.Lookup(geo.PointFromDegrees(-10, 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(e.Owner).To(Equal("east"))

		_, ok, err = index.Lookup(geo.PointFromDegrees(0, 120))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	ginkgo.It("should lookup cell centres", func() {
		index, err := cutter.BuildIndex(&IndexOptions{MaxLevel: 6})
		Expect(err).NotTo(HaveOccurred())

		for _, ll := range []s2.LatLng{
			s2.LatLngFromDegrees(10, -10),
			s2.LatLngFromDegrees(-75, -130),
			s2.LatLngFromDegrees(25, 30),
		} {
			p := s2.CellIDFromLatLng(ll).Parent(6).Point()
			exp, expOK := cutter.PartitionPoint(p)
			act, actOK, err := index.Lookup(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(actOK).To(BeTrue(), "for %v", ll)
			Expect(actOK).To(Equal(expOK), "for %v", ll)
			Expect(act).To(BeIdenticalTo(exp), "for %v", ll)
		}
	})

	ginkgo.It("should agree with point partitioning", func() {
		index, err := cutter.BuildIndex(nil)
		Expect(err).NotTo(HaveOccurred())

		rnd := rand.New(rand.NewSource(33))
		for i := 0; i < 2000; i++ {
			p := geo.PointFromDegrees(rnd.Float64()*180-90, rnd.Float64()*360-180)
			if distanceToBoundaries(cutter, p) < 1e-9 {
				continue
			}

			exp, expOK := cutter.PartitionPoint(p)
			act, actOK, err := index.Lookup(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(actOK).To(Equal(expOK), "for %v", s2.LatLngFromPoint(p))
			Expect(act).To(BeIdenticalTo(exp), "for %v", s2.LatLngFromPoint(p))
		}
	})

	ginkgo.It("should support empty cutters", func() {
		empty, err := New(nil, nil)
		Expect(err).NotTo(HaveOccurred())

		index, err := empty.BuildIndex(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(index.NumCells()).To(Equal(0))

		_, ok, err := index.Lookup(geo.PointFromDegrees(10, 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})

var _ = ginkgo.Describe("Kind", func() {
	ginkgo.It("should stringify", func() {
		Expect(StaticPolygon.String()).To(Equal("StaticPolygon"))
		Expect(ResolvedBoundary.String()).To(Equal("ResolvedBoundary"))
		Expect(ResolvedNetwork.String()).To(Equal("ResolvedNetwork"))
		Expect(Kind(0).String()).To(Equal("Unknown"))
	})
})
