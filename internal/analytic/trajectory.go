package analytic

// GenerateTrajectory returns n samples evenly spaced over [0, tMax], both
// ends included.
func GenerateTrajectory(h0, v0, g, k, m, tMax float64, n int) []Result {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Result{EvaluateAt(0, h0, v0, g, k, m)}
	}

	trajectory := make([]Result, n)
	dt := tMax / float64(n-1)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		if i == n-1 {
			t = tMax
		}
		trajectory[i] = EvaluateAt(t, h0, v0, g, k, m)
	}
	return trajectory
}
