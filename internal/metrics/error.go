package metrics

import "math"

// Epsilon guards divisions by values that are effectively zero.
const Epsilon = 1e-4

// RelativeError returns |simulated-analytic| as a percentage of |analytic|.
// Near a zero reference the absolute difference is returned instead.
func RelativeError(simulated, analytic float64) float64 {
	diff := math.Abs(simulated - analytic)
	if math.Abs(analytic) < Epsilon {
		return diff
	}
	return diff / math.Abs(analytic) * 100
}
