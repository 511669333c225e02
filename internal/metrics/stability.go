package metrics

import "github.com/san-kum/freefall/internal/physics"

// DefaultStabilityThreshold bounds the state norm of a sane drop: a
// kilometre-scale height or speed is already far outside any preset.
const DefaultStabilityThreshold = 1e6

// Stability is the fraction of observations whose state is finite and
// within threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(b physics.BodyState, t float64) {
	s.samples++
	x := b.Vector()
	if !x.IsValid() || x.Norm() > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
