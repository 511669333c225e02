package integrators

import "github.com/san-kum/freefall/internal/dynamo"

// SymplecticEuler is semi-implicit Euler on a split state: velocities
// (second half) are advanced first, then positions move with the new
// velocities.
type SymplecticEuler struct {
	scratch dynamo.State
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(s.scratch) != n {
		s.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, t)

	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dx[half+i]*dt
		s.scratch[i] = x[i]
		s.scratch[half+i] = result[half+i]
	}

	dxNew := dyn.Derive(s.scratch, t)
	for i := 0; i < half; i++ {
		result[i] = x[i] + dxNew[i]*dt
	}

	return result
}
