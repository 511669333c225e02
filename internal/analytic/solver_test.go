package analytic_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/physics"
)

var _ = Describe("EvaluateAt", func() {
	Context("without drag", func() {
		DescribeTable("matches elementary kinematics exactly",
			func(t, h0, v0, g, m float64) {
				r := analytic.EvaluateAt(t, h0, v0, g, 0, m)
				Expect(r.Time).To(Equal(t))
				Expect(r.Velocity).To(Equal(v0 + g*t))
				Expect(r.Height).To(Equal(h0 - v0*t - 0.5*g*t*t))
			},
			Entry("release from rest", 2.0, 100.0, 0.0, 9.81, 1.0),
			Entry("thrown downward", 1.5, 50.0, 4.0, 9.81, 5.0),
			Entry("thrown upward", 0.7, 20.0, -8.0, 15.0, 0.2),
			Entry("at t=0", 0.0, 30.0, 1.0, 6.0, 1.0),
			Entry("long after impact", 30.0, 100.0, 0.0, 9.81, 1.0),
		)
	})

	Context("with linear drag", func() {
		It("starts at the initial conditions", func() {
			r := analytic.EvaluateAt(0, 100, 3, 9.81, 0.5, 1)
			Expect(r.Height).To(BeNumerically("~", 100, 1e-12))
			Expect(r.Velocity).To(BeNumerically("~", 3, 1e-12))
		})

		DescribeTable("converges to terminal velocity",
			func(g, k, m float64) {
				lambda := k / m
				r := analytic.EvaluateAt(50/lambda, 100, 0, g, k, m)
				Expect(math.Abs(r.Velocity - analytic.TerminalVelocity(g, k, m))).To(BeNumerically("<", 1e-3))
			},
			Entry("breeze", 9.81, 0.5, 1.0),
			Entry("high drag", 9.81, 2.0, 1.0),
			Entry("light ball", 6.0, 0.6, 0.2),
			Entry("heavy ball", 15.0, 0.3, 5.0),
		)

		It("approaches terminal velocity from above when thrown faster", func() {
			vt := analytic.TerminalVelocity(9.81, 2, 1)
			r := analytic.EvaluateAt(1, 100, 20, 9.81, 2, 1)
			Expect(r.Velocity).To(BeNumerically(">", vt))
			Expect(r.Velocity).To(BeNumerically("<", 20))
		})
	})

	Context("near the drag threshold", func() {
		It("uses the drag-free branch at or below Epsilon", func() {
			below := analytic.EvaluateAt(4, 100, 0, 9.81, analytic.Epsilon/2, 1)
			free := analytic.EvaluateAt(4, 100, 0, 9.81, 0, 1)
			Expect(below).To(Equal(free))

			at := analytic.EvaluateAt(4, 100, 0, 9.81, analytic.Epsilon, 1)
			Expect(at).To(Equal(free))
		})

		It("switches to the drag branch just above Epsilon with a small jump", func() {
			above := analytic.EvaluateAt(4, 100, 0, 9.81, 2*analytic.Epsilon, 1)
			free := analytic.EvaluateAt(4, 100, 0, 9.81, 0, 1)

			Expect(above.Height).NotTo(Equal(free.Height))
			Expect(above.Height).To(BeNumerically(">", free.Height))
			Expect(above.Height - free.Height).To(BeNumerically("<", 0.1))
		})
	})
})

var _ = Describe("TerminalVelocity", func() {
	It("is infinite without drag", func() {
		Expect(math.IsInf(analytic.TerminalVelocity(9.81, 0, 1), 1)).To(BeTrue())
	})

	It("is m*g/k with drag", func() {
		Expect(analytic.TerminalVelocity(9.81, 2, 1)).To(BeNumerically("~", 4.905, 1e-12))
		Expect(analytic.TerminalVelocity(9.81, 0.5, 5)).To(BeNumerically("~", 98.1, 1e-9))
	})
})

var _ = Describe("FindFallTime", func() {
	const tol = analytic.DefaultTolerance

	It("matches sqrt(2h/g) without drag", func() {
		t, ok := analytic.FindFallTime(100, 0, 9.81, 0, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeTrue())
		Expect(t).To(BeNumerically("~", 4.515, 1e-3))
		Expect(t).To(BeNumerically("~", analytic.IdealFallTime(100, 9.81), 1e-5))
	})

	DescribeTable("round-trips through EvaluateAt",
		func(h0, v0, g, k, m float64) {
			t, ok := analytic.FindFallTime(h0, v0, g, k, m, analytic.DefaultHorizon, tol)
			Expect(ok).To(BeTrue())

			r := analytic.EvaluateAt(t, h0, v0, g, k, m)
			impact := math.Abs(r.Velocity)
			Expect(r.Height).To(BeNumerically("~", 0, tol*math.Max(impact, 1)))
		},
		Entry("ideal plane", 100.0, 0.0, 9.81, 0.0, 1.0),
		Entry("breeze", 100.0, 0.0, 9.81, 0.5, 1.0),
		Entry("high drag", 100.0, 0.0, 9.81, 2.0, 1.0),
		Entry("low gravity, light ball", 100.0, 0.0, 6.0, 0.6, 0.2),
		Entry("high gravity, heavy ball", 250.0, 5.0, 15.0, 0.3, 5.0),
		Entry("thrown upward", 10.0, -12.0, 9.81, 0.5, 1.0),
	)

	It("takes longer as drag grows", func() {
		prev := 0.0
		for _, k := range []float64{0, 0.1, 0.5, 1, 2, 5} {
			t, ok := analytic.FindFallTime(100, 0, 9.81, k, 1, analytic.DefaultHorizon, tol)
			Expect(ok).To(BeTrue())
			Expect(t).To(BeNumerically(">", prev), "k=%v", k)
			prev = t
		}
	})

	It("returns 0 when already on the ground", func() {
		t, ok := analytic.FindFallTime(0, 5, 9.81, 0.5, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(0.0))

		t, ok = analytic.FindFallTime(-3, 0, 9.81, 0, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(0.0))
	})

	It("reports no solution when the body cannot land within the horizon", func() {
		t, ok := analytic.FindFallTime(100, 0, 9.81, 0, 1, 2, tol)
		Expect(ok).To(BeFalse())
		Expect(math.IsNaN(t)).To(BeTrue())

		t, ok = analytic.FindFallTime(1e9, 0, 9.81, 5, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeFalse())
		Expect(math.IsNaN(t)).To(BeTrue())
	})

	It("reports no solution in zero gravity", func() {
		_, ok := analytic.FindFallTime(100, 0, 0, 0, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeFalse())
	})

	It("is deterministic", func() {
		first, _ := analytic.FindFallTime(123.4, 1.2, 9.81, 0.7, 1.3, analytic.DefaultHorizon, tol)
		for i := 0; i < 10; i++ {
			again, _ := analytic.FindFallTime(123.4, 1.2, 9.81, 0.7, 1.3, analytic.DefaultHorizon, tol)
			Expect(again).To(Equal(first))
		}
	})

	It("expands the bracket for tall drops", func() {
		t, ok := analytic.FindFallTime(5000, 0, 9.81, 2, 1, analytic.DefaultHorizon, tol)
		Expect(ok).To(BeTrue())
		Expect(t).To(BeNumerically(">", 1000))
	})
})

var _ = Describe("GenerateTrajectory", func() {
	It("produces n evenly spaced samples including both ends", func() {
		traj := analytic.GenerateTrajectory(100, 2, 9.81, 0.5, 1, 4, 9)
		Expect(traj).To(HaveLen(9))

		Expect(traj[0].Time).To(Equal(0.0))
		Expect(traj[0].Height).To(BeNumerically("~", 100, 1e-12))
		Expect(traj[0].Velocity).To(BeNumerically("~", 2, 1e-12))
		Expect(traj[8].Time).To(Equal(4.0))

		for i := 1; i < len(traj); i++ {
			Expect(traj[i].Time - traj[i-1].Time).To(BeNumerically("~", 0.5, 1e-12))
			Expect(traj[i]).To(Equal(analytic.EvaluateAt(traj[i].Time, 100, 2, 9.81, 0.5, 1)))
		}
	})

	It("handles degenerate point counts", func() {
		Expect(analytic.GenerateTrajectory(100, 0, 9.81, 0, 1, 4, 0)).To(BeNil())

		single := analytic.GenerateTrajectory(100, 0, 9.81, 0, 1, 4, 1)
		Expect(single).To(HaveLen(1))
		Expect(single[0].Time).To(Equal(0.0))
	})
})

var _ = Describe("Solver", func() {
	It("reads the live parameter handle on every call", func() {
		model := physics.NewFreeFall(physics.WorldParameters{Gravity: 9.81}, physics.BodyParameters{Mass: 1})
		s := analytic.NewSolver(model)

		Expect(math.IsInf(s.TerminalVelocity(), 1)).To(BeTrue())
		free, _ := s.FallTime(100, 0)

		model.World.DragCoefficient = 2
		Expect(s.TerminalVelocity()).To(BeNumerically("~", 4.905, 1e-12))
		dragged, _ := s.FallTime(100, 0)
		Expect(dragged).To(BeNumerically(">", free))

		Expect(s.At(1, 100, 0)).To(Equal(analytic.EvaluateAt(1, 100, 0, 9.81, 2, 1)))
		Expect(s.Trajectory(100, 0, 2, 3)).To(HaveLen(3))
	})
})

var _ = Describe("ideal helpers", func() {
	It("computes drag-free fall time and impact speed", func() {
		Expect(analytic.IdealFallTime(100, 9.81)).To(BeNumerically("~", 4.5152, 1e-4))
		Expect(analytic.IdealImpactVelocity(100, 9.81)).To(BeNumerically("~", 44.294, 1e-3))
	})

	It("returns 0 for non-physical inputs", func() {
		Expect(analytic.IdealFallTime(0, 9.81)).To(Equal(0.0))
		Expect(analytic.IdealFallTime(100, 0)).To(Equal(0.0))
		Expect(analytic.IdealImpactVelocity(-1, 9.81)).To(Equal(0.0))
	})
})
