// Package physics provides the free-fall body model and its fixed-step
// integrator.
//
// A body falls along one axis under constant gravity and linear drag:
//
//	m dv/dt = m g - k v,   dh/dt = -v
//
// Velocity is positive downward, so a falling body has v > 0 and a
// decreasing height. [Advance] is the canonical semi-implicit Euler step;
// [FreeFall] is the live parameter handle shared by the host loop and the
// analytic solver, and also implements [dynamo.System] so the generic
// integrators can drive the same body:
//
//	body := physics.NewFreeFall(physics.WorldParameters{Gravity: 9.81, DragCoefficient: 0.5}, physics.BodyParameters{Mass: 1})
//	s := physics.NewBodyState(100, 0)
//	for !s.Grounded() {
//	    s = body.Advance(s, 1.0/60)
//	}
//
// # Live Updates
//
// Writing to a [FreeFall] between ticks changes the force model for every
// following tick. It never resets a [BodyState]; call [BodyState.Reset]
// for that.
package physics
