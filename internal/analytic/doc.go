// Package analytic provides the exact closed-form solution of linear-drag
// free fall, obtained by Laplace transform of
//
//	m dv/dt = m g - k v
//
// together with terminal velocity and a bounded bisection search for the
// time of impact. Every function is pure; the same inputs always produce
// the same bits.
//
// Drag coefficients at or below [Epsilon] select the drag-free branch.
// There is a small discontinuity between the two branches for
// 0 < k <= Epsilon.
package analytic
