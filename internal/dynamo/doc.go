// Package dynamo provides the core simulation primitives shared by the
// free-fall engine and its integrators.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical integration of ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Hamiltonian]: systems that can report their mechanical energy
//   - [Configurable]: systems whose parameters may be edited between steps
//
// # Example
//
//	body := physics.NewFreeFall(physics.WorldParameters{Gravity: 9.81}, physics.BodyParameters{Mass: 1})
//	integ := integrators.NewRK4()
//	x := dynamo.State{100, 0}
//	x = integ.Step(body, x, 0, 1.0/60)
//
// # Thread Safety
//
// Nothing in this package holds shared mutable state. Integrators keep
// scratch buffers and must not be shared between goroutines.
package dynamo
