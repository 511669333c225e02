package analytic

import "math"

// IdealFallTime is the drag-free time to fall h from rest.
func IdealFallTime(h, g float64) float64 {
	if g <= 0 || h <= 0 {
		return 0
	}
	return math.Sqrt(2 * h / g)
}

// IdealImpactVelocity is the drag-free speed after falling h from rest.
func IdealImpactVelocity(h, g float64) float64 {
	if g <= 0 || h <= 0 {
		return 0
	}
	return math.Sqrt(2 * g * h)
}
