package geo_test

import (
	"math"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/platecut/geo"
	"github.com/golang/geo/s2"
)

var _ = Describe("Ring", func() {
	var subject *geo.Ring

	BeforeEach(func() {
		var err error
		subject, err = geo.NewRing([]s2.Point{ne, nw, sw, se})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should validate", func() {
		_, err := geo.NewRing([]s2.Point{ne, nw})
		Expect(err).To(MatchError(geo.ErrTooFewVertices))

		_, err = geo.NewRing([]s2.Point{ne, nw, ne})
		Expect(err).To(MatchError(geo.ErrTooFewVertices))

		_, err = geo.NewRing(nil)
		Expect(err).To(MatchError(geo.ErrTooFewVertices))
	})

	It("should drop closing vertices", func() {
		ring, err := geo.NewRing([]s2.Point{ne, nw, sw, se, ne})
		Expect(err).NotTo(HaveOccurred())
		Expect(ring.NumArcs()).To(Equal(4))
		Expect(ring.Points()).To(Equal(subject.Points()))
	})

	It("should wrap indices", func() {
		Expect(subject.NumArcs()).To(Equal(4))
		Expect(subject.NumPoints()).To(Equal(4))
		Expect(subject.Vertex(0)).To(Equal(ne))
		Expect(subject.Vertex(4)).To(Equal(ne))
		Expect(subject.Vertex(-1)).To(Equal(se))
		Expect(subject.Arc(3).End).To(Equal(ne))
		Expect(subject.Arc(-1).Start).To(Equal(se))
	})

	It("should keep degenerate arcs", func() {
		ring, err := geo.NewRing([]s2.Point{ne, ne, nw, sw})
		Expect(err).NotTo(HaveOccurred())
		Expect(ring.NumArcs()).To(Equal(4))
		Expect(ring.Arc(0).IsZeroLength()).To(BeTrue())
		Expect(ring.Segments()).To(HaveLen(3))

		ring, err = geo.NewRing([]s2.Point{northPole, southPole, geo.PointFromDegrees(0, 90)})
		Expect(err).NotTo(HaveOccurred())
		Expect(ring.Arc(0).IsAntipodal()).To(BeTrue())
		Expect(ring.Segments()).To(HaveLen(4))
	})

	It("should calculate centroids", func() {
		c := s2.LatLngFromPoint(subject.Centroid())
		Expect(c.Lat.Degrees()).To(BeNumerically("~", 39.0, 0.1))
		Expect(c.Lng.Degrees()).To(BeNumerically("~", -105.5, 0.1))
	})

	It("should fall back to the pole for balanced rings", func() {
		ring, err := geo.NewRing([]s2.Point{
			geo.PointFromDegrees(0, 0),
			geo.PointFromDegrees(0, 90),
			geo.PointFromDegrees(0, 180),
			geo.PointFromDegrees(0, -90),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(ring.Centroid()).To(Equal(northPole))
	})

	It("should calculate left areas", func() {
		// ne, nw, sw, se runs counter-clockwise
		area := s2.LoopFromPoints([]s2.Point{ne, nw, sw, se}).Area()
		Expect(subject.LeftArea()).To(BeNumerically("~", area, 1e-12))

		reversed, err := geo.NewRing([]s2.Point{se, sw, nw, ne})
		Expect(err).NotTo(HaveOccurred())
		Expect(reversed.LeftArea()).To(BeNumerically("~", 4*math.Pi-area, 1e-12))
	})

	It("should calculate hemisphere areas", func() {
		ring, err := geo.NewRing([]s2.Point{
			geo.PointFromDegrees(0, 0),
			geo.PointFromDegrees(0, 90),
			geo.PointFromDegrees(0, 180),
			geo.PointFromDegrees(0, -90),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(ring.LeftArea()).To(BeNumerically("~", 2*math.Pi, 1e-12))
	})

	It("should calculate distances", func() {
		Expect(subject.Distance(ne).Radians()).To(BeNumerically("~", 0, 1e-15))
		Expect(subject.Distance(geo.PointFromDegrees(42, -105)).Degrees()).To(BeNumerically("~", 0.95, 0.1))
	})
})

var _ = Describe("Polyline", func() {
	It("should validate", func() {
		_, err := geo.NewPolyline([]s2.Point{ne})
		Expect(err).To(MatchError(geo.ErrTooFewVertices))
	})

	It("should expose arcs", func() {
		line, err := geo.NewPolyline([]s2.Point{ne, nw, sw})
		Expect(err).NotTo(HaveOccurred())
		Expect(line.NumPoints()).To(Equal(3))
		Expect(line.NumArcs()).To(Equal(2))
		Expect(line.Arc(1).Start).To(Equal(nw))
		Expect(line.Arc(1).End).To(Equal(sw))
		Expect(line.Points()).To(Equal([]s2.Point{ne, nw, sw}))
	})
})

var _ = Describe("Multipoint", func() {
	It("should validate", func() {
		_, err := geo.NewMultipoint(nil)
		Expect(err).To(MatchError(geo.ErrEmpty))
	})

	It("should expose points", func() {
		mpt, err := geo.NewMultipoint([]s2.Point{ne, sw})
		Expect(err).NotTo(HaveOccurred())
		Expect(mpt.NumPoints()).To(Equal(2))
		Expect(mpt.Point(1)).To(Equal(sw))
	})
})
