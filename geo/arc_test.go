package geo_test

import (
	"math"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/platecut/geo"
	"github.com/golang/geo/s2"
)

var _ = Describe("Arc", func() {
	It("should derive the rotation axis", func() {
		arc := geo.NewArc(geo.PointFromDegrees(0, 0), geo.PointFromDegrees(0, 90))
		axis, ok := arc.Axis()
		Expect(ok).To(BeTrue())
		Expect(axis.Z).To(BeNumerically("~", 1, 1e-15))
		Expect(arc.IsZeroLength()).To(BeFalse())
		Expect(arc.IsAntipodal()).To(BeFalse())
		Expect(arc.Length().Radians()).To(BeNumerically("~", math.Pi/2, 1e-15))
	})

	It("should detect zero-length arcs", func() {
		arc := geo.NewArc(sw, sw)
		_, ok := arc.Axis()
		Expect(ok).To(BeFalse())
		Expect(arc.IsZeroLength()).To(BeTrue())
		Expect(arc.Length().Radians()).To(BeZero())
		Expect(arc.Midpoint()).To(Equal(sw))
		Expect(arc.Segments()).To(HaveLen(1))
	})

	It("should detect antipodal arcs", func() {
		arc := geo.NewArc(northPole, southPole)
		_, ok := arc.Axis()
		Expect(ok).To(BeFalse())
		Expect(arc.IsAntipodal()).To(BeTrue())
		Expect(arc.Length().Radians()).To(Equal(math.Pi))

		mid := arc.Midpoint()
		Expect(mid.Dot(northPole.Vector)).To(BeNumerically("~", 0, 1e-15))

		segs := arc.Segments()
		Expect(segs).To(HaveLen(2))
		Expect(segs[0].Start).To(Equal(northPole))
		Expect(segs[0].End).To(Equal(mid))
		Expect(segs[1].Start).To(Equal(mid))
		Expect(segs[1].End).To(Equal(southPole))
		for _, s := range segs {
			_, ok := s.Axis()
			Expect(ok).To(BeTrue())
		}
	})

	It("should calculate midpoints", func() {
		arc := geo.NewArc(geo.PointFromDegrees(0, 0), geo.PointFromDegrees(0, 90))
		mid := s2.LatLngFromPoint(arc.Midpoint())
		Expect(mid.Lat.Degrees()).To(BeNumerically("~", 0, 1e-12))
		Expect(mid.Lng.Degrees()).To(BeNumerically("~", 45, 1e-12))
	})

	It("should calculate distances", func() {
		arc := geo.NewArc(geo.PointFromDegrees(0, 0), geo.PointFromDegrees(0, 90))
		Expect(arc.Distance(geo.PointFromDegrees(10, 45)).Degrees()).To(BeNumerically("~", 10, 1e-9))
		Expect(arc.Distance(geo.PointFromDegrees(0, 100)).Degrees()).To(BeNumerically("~", 10, 1e-9))
		Expect(arc.Distance(geo.PointFromDegrees(0, 45)).Degrees()).To(BeNumerically("~", 0, 1e-9))
	})

	DescribeTable("should calculate dot ranges",
		func(lat0, lng0, lat1, lng1 float64, expMin, expMax float64) {
			arc := geo.NewArc(geo.PointFromDegrees(lat0, lng0), geo.PointFromDegrees(lat1, lng1))
			min, max := arc.DotRange(northPole)
			Expect(min).To(BeNumerically("~", expMin, 1e-12))
			Expect(max).To(BeNumerically("~", expMax, 1e-12))
		},

		Entry("meridian", 10.0, 0.0, 40.0, 0.0, math.Sin(10*math.Pi/180), math.Sin(40*math.Pi/180)),
		Entry("along the equator", 0.0, 0.0, 0.0, 90.0, 0.0, 0.0),
		Entry("bulging towards the pole", 45.0, -45.0, 45.0, 45.0, math.Sin(45*math.Pi/180), 0.816496580927726),
		Entry("over the pole", 80.0, 0.0, 80.0, 180.0, math.Sin(80*math.Pi/180), 1.0),
	)

	It("should reverse", func() {
		arc := geo.NewArc(sw, ne).Reverse()
		Expect(arc.Start).To(Equal(ne))
		Expect(arc.End).To(Equal(sw))
	})
})
