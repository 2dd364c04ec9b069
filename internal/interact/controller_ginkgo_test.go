package interact_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crowdmorph/internal/interact"
)

var _ = Describe("Controller", func() {
	var (
		c   *interact.Controller
		now time.Time
	)

	BeforeEach(func() {
		c = interact.NewController(interact.DefaultSettings())
		now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	})

	Describe("state machine", func() {
		It("starts idle on the logo", func() {
			Expect(c.State()).To(Equal(interact.Idle))
			Expect(c.Mode()).To(Equal(interact.ModeLogo))
			Expect(c.Transform()).To(Equal(interact.Identity()))
		})

		It("goes idle -> hover -> dragging -> idle", func() {
			c.Handle(interact.PointerMove{X: 10, Y: 10})
			Expect(c.State()).To(Equal(interact.Hover))

			c.Handle(interact.PointerDown{X: 10, Y: 10, At: now})
			Expect(c.State()).To(Equal(interact.Dragging))

			c.Handle(interact.PointerUp{X: 90, Y: 10, At: now.Add(time.Second)})
			Expect(c.State()).To(Equal(interact.Idle))
			Expect(c.Pointer().Active).To(BeFalse())
		})

		It("does not repel while dragging", func() {
			c.Handle(interact.PointerDown{X: 10, Y: 10, At: now})
			c.Handle(interact.PointerMove{X: 20, Y: 10})
			snap := c.Snapshot()
			Expect(snap.Pointer.Active).To(BeTrue())
			Expect(snap.Repelling()).To(BeFalse())
		})
	})

	Describe("mode cycling", func() {
		click := func(dx float64, held time.Duration) bool {
			c.Handle(interact.PointerDown{X: 100, Y: 100, At: now})
			advanced := c.Handle(interact.PointerUp{X: 100 + dx, Y: 100, At: now.Add(held)})
			now = now.Add(time.Second)
			return advanced
		}

		It("wraps after three clicks", func() {
			for i := 0; i < 3; i++ {
				Expect(click(0, 20*time.Millisecond)).To(BeTrue())
			}
			Expect(c.Mode()).To(Equal(interact.ModeLogo))
		})

		DescribeTable("drags never advance the mode",
			func(dx float64, held time.Duration) {
				Expect(click(dx, held)).To(BeFalse())
				Expect(c.Mode()).To(Equal(interact.ModeLogo))
			},
			Entry("moved 10px", 10.0, 20*time.Millisecond),
			Entry("moved far", 250.0, 20*time.Millisecond),
			Entry("held 200ms", 0.0, 200*time.Millisecond),
			Entry("held long", 0.0, 3*time.Second),
		)

		It("leaves rotation unchanged by a click", func() {
			click(3, 10*time.Millisecond)
			Expect(c.Transform().Rotation).To(BeNumerically("==", 0))
		})
	})

	Describe("wheel", func() {
		It("is independent of dragging", func() {
			c.Handle(interact.PointerDown{X: 0, Y: 0, At: now})
			c.Handle(interact.Wheel{DeltaY: -500})
			Expect(c.Transform().Zoom).To(BeNumerically("~", 1.5, 1e-12))
			Expect(c.State()).To(Equal(interact.Dragging))
		})

		It("clamps at both ends", func() {
			c.Handle(interact.Wheel{DeltaY: 1e6})
			Expect(c.Transform().Zoom).To(Equal(interact.MinZoom))
			c.Handle(interact.Wheel{DeltaY: -1e6})
			Expect(c.Transform().Zoom).To(Equal(interact.MaxZoom))
		})
	})
})
