package metrics

import (
	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/physics"
)

// DefaultSampleInterval is the simulated time between comparator samples.
const DefaultSampleInterval = 0.08

// Point is one (t, height, velocity) triple for charting.
type Point struct {
	Time     float64
	Height   float64
	Velocity float64
}

// Sample pairs the numerical and the exact state at the same instant.
type Sample struct {
	Simulated     Point
	Analytic      Point
	HeightError   float64
	VelocityError float64
	Energy        EnergySnapshot
}

// Comparator samples a numerical run against the closed form at a fixed
// cadence of simulated time and keeps bounded histories for charts.
type Comparator struct {
	model    *physics.FreeFall
	interval float64
	last     float64
	sampled  bool

	samples   *History[Sample]
	simulated *History[Point]
	analytic  *History[Point]
}

func NewComparator(model *physics.FreeFall, interval float64, capacity int) *Comparator {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Comparator{
		model:     model,
		interval:  interval,
		samples:   NewHistory[Sample](capacity),
		simulated: NewHistory[Point](capacity),
		analytic:  NewHistory[Point](capacity),
	}
}

// Observe records a sample when at least one interval has passed since the
// previous one. The first call always samples.
func (c *Comparator) Observe(s physics.BodyState, t float64) (Sample, bool) {
	if c.sampled && t-c.last < c.interval {
		return Sample{}, false
	}
	return c.Compare(s, t), true
}

// Compare records a sample unconditionally.
func (c *Comparator) Compare(s physics.BodyState, t float64) Sample {
	c.last = t
	c.sampled = true

	w, b := c.model.World, c.model.Body
	exact := analytic.EvaluateAt(t, s.InitialHeight, s.InitialVelocity, w.Gravity, w.DragCoefficient, b.Mass)

	sample := Sample{
		Simulated:     Point{Time: t, Height: s.Height, Velocity: s.Velocity},
		Analytic:      Point{Time: t, Height: exact.Height, Velocity: exact.Velocity},
		HeightError:   RelativeError(s.Height, exact.Height),
		VelocityError: RelativeError(s.Velocity, exact.Velocity),
		Energy:        NewEnergySnapshot(s.Height, s.Velocity, s.InitialHeight, s.InitialVelocity, w.Gravity, b.Mass),
	}

	c.samples.Append(sample)
	c.simulated.Append(sample.Simulated)
	c.analytic.Append(sample.Analytic)
	return sample
}

func (c *Comparator) Samples() []Sample          { return c.samples.Items() }
func (c *Comparator) Simulated() *History[Point] { return c.simulated }
func (c *Comparator) Analytic() *History[Point]  { return c.analytic }

func (c *Comparator) Reset() {
	c.last = 0
	c.sampled = false
	c.samples.Clear()
	c.simulated.Clear()
	c.analytic.Clear()
}
