package partition

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/golang/geo/s2"
)

var _ = Describe("chain", func() {
	var subject *chain

	var (
		p1 = s2.PointFromLatLng(s2.LatLngFromDegrees(52.8, -2.8))
		p2 = s2.PointFromLatLng(s2.LatLngFromDegrees(64.3, -7.7))
		p3 = s2.PointFromLatLng(s2.LatLngFromDegrees(54.2, -5.9))

		x1 = s2.Interpolate(0.3, p2, p3)
		x2 = s2.Interpolate(0.6, p2, p3)
	)

	BeforeEach(func() {
		subject = newChain([]s2.Point{p1, p2, p3})
	})

	var sliceOf = func(c *chain) (pts []testNode) {
		nodes := c.Cycle()
		for _, n := range nodes[:len(nodes)-1] {
			pts = append(pts, testNode{n.Point, n.Split, n.Vertex})
		}
		return pts
	}

	It("should create chains from points", func() {
		Expect(sliceOf(subject)).To(Equal([]testNode{
			{p1, false, true},
			{p2, false, true},
			{p3, false, true},
		}))
	})

	It("should traverse", func() {
		Expect(subject.Next().Point).To(Equal(p2))
		Expect(subject.Next().Next().Point).To(Equal(p3))
		Expect(subject.Prev().Point).To(Equal(p3))
		Expect(subject.Next().Next().Next()).To(BeIdenticalTo(subject))
	})

	It("should push splits in order", func() {
		b := subject.Next()

		b.PushSplit(x2, ringPos{seg: 2}, 1e-10)
		b.PushSplit(x1, ringPos{seg: 1}, 1e-10)
		Expect(sliceOf(subject)).To(Equal([]testNode{
			{p1, false, true},
			{p2, false, true},
			{x1, true, false},
			{x2, true, false},
			{p3, false, true},
		}))
		Expect(b.Next().At).To(Equal(ringPos{seg: 1}))
		Expect(b.Next().Next().At).To(Equal(ringPos{seg: 2}))
	})

	It("should merge nearby splits", func() {
		b := subject.Next()

		Expect(b.PushSplit(x1, ringPos{seg: 1}, 1e-10)).To(BeIdenticalTo(b.Next()))
		Expect(b.PushSplit(x1, ringPos{seg: 4}, 1e-10)).To(BeIdenticalTo(b.Next()))
		Expect(b.PushSplit(p3, ringPos{seg: 3, vertex: true}, 1e-10)).To(BeIdenticalTo(b.Next().Next()))
		Expect(b.PushSplit(p2, ringPos{seg: 7}, 1e-10)).To(BeIdenticalTo(b))

		Expect(sliceOf(subject)).To(Equal([]testNode{
			{p1, false, true},
			{p2, true, true},
			{x1, true, false},
			{p3, true, true},
		}))
		Expect(b.Next().At).To(Equal(ringPos{seg: 1}))
		Expect(b.Next().Next().At).To(Equal(ringPos{seg: 3, vertex: true}))
	})

	It("should walk and find splits", func() {
		Expect(subject.FindSplit()).To(BeNil())

		c := subject.Next().Next()
		c.Mark(ringPos{seg: 5})
		Expect(subject.FindSplit()).To(BeIdenticalTo(c))
		Expect(c.FindSplit()).To(BeIdenticalTo(c))

		Expect(subject.Walk(c)).To(HaveLen(3))
		Expect(c.Walk(subject)).To(HaveLen(2))
		Expect(c.Cycle()).To(HaveLen(4))
		Expect(subject.Walk(subject)).To(HaveLen(1))
	})
})

type testNode struct {
	s2.Point
	Split  bool
	Vertex bool
}
