package integrators

import "github.com/san-kum/freefall/internal/dynamo"

// Verlet is velocity Verlet. With drag the force depends on velocity, so
// the end-of-step acceleration is evaluated with the old velocity.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, t)

	// Position rates are linear in velocity, so averaging the rate at the
	// old and the kicked velocity gives x + v dt + a dt^2 / 2.
	for i := 0; i < half; i++ {
		v.scratch[i] = x[i]
		v.scratch[half+i] = x[half+i] + dx[half+i]*dt
	}
	dxKick := dyn.Derive(v.scratch, t+dt)

	for i := 0; i < half; i++ {
		result[i] = x[i] + 0.5*(dx[i]+dxKick[i])*dt
	}

	for i := 0; i < half; i++ {
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew := dyn.Derive(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return result
}

type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

// Step is kick-drift-kick.
func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, t)
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[i] = x[i]
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	drift := dyn.Derive(l.scratch, t+halfDt)
	for i := 0; i < half; i++ {
		result[i] = x[i] + drift[i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := dyn.Derive(l.scratch, t+dt)

	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
