package analytic

import (
	"fmt"
	"math"

	"github.com/san-kum/freefall/internal/physics"
)

const (
	// Epsilon is the drag threshold below which the drag-free branch is used.
	Epsilon = 1e-4

	MaxExpansions = 50
	MaxBisections = 100

	DefaultHorizon   = 10000.0
	DefaultTolerance = 1e-6
)

// Result is the exact state of the body at Time.
type Result struct {
	Time     float64
	Height   float64
	Velocity float64
}

func (r Result) String() string {
	return fmt.Sprintf("t=%.3fs, h=%.3fm, v=%.3fm/s", r.Time, r.Height, r.Velocity)
}

// EvaluateAt returns height and velocity at time t for a body released
// from h0 with downward velocity v0.
func EvaluateAt(t, h0, v0, g, k, m float64) Result {
	r := Result{Time: t}

	if k <= Epsilon {
		r.Velocity = v0 + g*t
		r.Height = h0 - v0*t - 0.5*g*t*t
		return r
	}

	lambda := k / m
	vTerm := m * g / k
	decay := math.Exp(-lambda * t)

	r.Velocity = vTerm + (v0-vTerm)*decay
	r.Height = h0 - vTerm*t - (v0-vTerm)*(1-decay)/lambda
	return r
}

// TerminalVelocity returns m*g/k, or +Inf when drag is negligible.
func TerminalVelocity(g, k, m float64) float64 {
	if k <= Epsilon {
		return math.Inf(1)
	}
	return m * g / k
}

// Solver evaluates the closed form against a live parameter handle.
type Solver struct {
	model *physics.FreeFall
}

func NewSolver(model *physics.FreeFall) *Solver {
	return &Solver{model: model}
}

func (s *Solver) At(t, h0, v0 float64) Result {
	w, b := s.model.World, s.model.Body
	return EvaluateAt(t, h0, v0, w.Gravity, w.DragCoefficient, b.Mass)
}

func (s *Solver) FallTime(h0, v0 float64) (float64, bool) {
	w, b := s.model.World, s.model.Body
	return FindFallTime(h0, v0, w.Gravity, w.DragCoefficient, b.Mass, DefaultHorizon, DefaultTolerance)
}

func (s *Solver) TerminalVelocity() float64 {
	return TerminalVelocity(s.model.World.Gravity, s.model.World.DragCoefficient, s.model.Body.Mass)
}

func (s *Solver) Trajectory(h0, v0, tMax float64, n int) []Result {
	w, b := s.model.World, s.model.Body
	return GenerateTrajectory(h0, v0, w.Gravity, w.DragCoefficient, b.Mass, tMax, n)
}
