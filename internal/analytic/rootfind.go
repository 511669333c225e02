package analytic

import "math"

// fallbackGravity only seeds the bracket when g is not positive; the
// closed form still uses the caller's g.
const fallbackGravity = 9.81

// FindFallTime returns the smallest t >= 0 with zero height, found by
// bisection. The bracket starts at max(10, 2*h0/g) and doubles at most
// MaxExpansions times, never past tMax. ok is false, and t is NaN, when the
// body does not land within tMax.
func FindFallTime(h0, v0, g, k, m, tMax, tol float64) (t float64, ok bool) {
	height := func(t float64) float64 {
		return EvaluateAt(t, h0, v0, g, k, m).Height
	}

	a := 0.0
	if height(a) <= 0 {
		return 0, true
	}

	gEst := g
	if gEst <= 0 {
		gEst = fallbackGravity
	}
	b := math.Min(math.Max(10, 2*h0/gEst), tMax)

	for i := 0; i < MaxExpansions && b < tMax && height(b) > 0; i++ {
		b = math.Min(2*b, tMax)
	}

	if height(b) > 0 {
		return math.NaN(), false
	}

	for i := 0; i < MaxBisections; i++ {
		mid := 0.5 * (a + b)
		hMid := height(mid)

		if math.Abs(hMid) < tol {
			return mid, true
		}

		if height(a)*hMid <= 0 {
			b = mid
		} else {
			a = mid
		}

		if math.Abs(b-a) < tol {
			return 0.5 * (a + b), true
		}
	}

	return 0.5 * (a + b), true
}
