package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
)

// oscillator lays out [x, v] with dx/dt = v, dv/dt = -x.
type oscillator struct{}

func (s *oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *oscillator) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSplitIntegratorsOnOscillator(t *testing.T) {
	tests := []struct {
		name  string
		integ dynamo.Integrator
		tol   float64
	}{
		{"symplectic", NewSymplecticEuler(), 1e-2},
		{"verlet", NewVerlet(), 1e-3},
		{"leapfrog", NewLeapfrog(), 1e-3},
		{"euler", NewEuler(), 2e-2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dyn := &oscillator{}
			x := dynamo.State{1.0, 0.0}
			dt := 0.01
			for i := 0; i < 100; i++ {
				x = tt.integ.Step(dyn, x, float64(i)*dt, dt)
			}
			if math.Abs(x[0]-math.Cos(1)) > tt.tol {
				t.Errorf("position %.6f, expected %.6f", x[0], math.Cos(1))
			}
		})
	}
}
