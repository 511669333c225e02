package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/physics"
)

func TestComparator_Cadence(t *testing.T) {
	model := physics.NewDefaultFreeFall()
	c := NewComparator(model, 0.08, 100)
	s := physics.NewBodyState(100, 0)

	if _, ok := c.Observe(s, 0); !ok {
		t.Fatal("first observation must sample")
	}
	if _, ok := c.Observe(s, 0.05); ok {
		t.Error("sampled before the interval elapsed")
	}
	if _, ok := c.Observe(s, 0.08); !ok {
		t.Error("expected a sample once the interval elapsed")
	}
	if _, ok := c.Observe(s, 0.1); ok {
		t.Error("sampled before the next interval elapsed")
	}

	if got := len(c.Samples()); got != 2 {
		t.Errorf("expected 2 samples, got %d", got)
	}
}

func TestComparator_SampleContents(t *testing.T) {
	model := physics.NewFreeFall(physics.WorldParameters{Gravity: 9.81, DragCoefficient: 0.5}, physics.BodyParameters{Mass: 1})
	c := NewComparator(model, 0.08, 100)

	exact := analytic.EvaluateAt(2, 100, 0, 9.81, 0.5, 1)
	s := physics.BodyState{Height: exact.Height, Velocity: exact.Velocity, InitialHeight: 100}

	sample := c.Compare(s, 2)
	if sample.Analytic.Height != exact.Height || sample.Analytic.Velocity != exact.Velocity {
		t.Errorf("analytic point %+v, want %+v", sample.Analytic, exact)
	}
	if sample.HeightError != 0 || sample.VelocityError != 0 {
		t.Errorf("expected zero error for an exact state, got %f %f", sample.HeightError, sample.VelocityError)
	}
	if sample.Energy.Dissipated <= 0 {
		t.Errorf("expected dissipated energy with drag, got %f", sample.Energy.Dissipated)
	}
	if sample.Simulated.Time != 2 || sample.Analytic.Time != 2 {
		t.Error("both points must carry the sample time")
	}
}

func TestComparator_BoundedHistory(t *testing.T) {
	model := physics.NewDefaultFreeFall()
	c := NewComparator(model, 0.08, 10)
	s := physics.NewBodyState(100, 0)

	for i := 0; i < 100; i++ {
		c.Compare(s, float64(i)*0.1)
	}

	if len(c.Samples()) != 10 {
		t.Errorf("expected 10 retained samples, got %d", len(c.Samples()))
	}
	if c.Simulated().Len() != 10 || c.Analytic().Len() != 10 {
		t.Error("point histories must be bounded as well")
	}
	if last, _ := c.Simulated().Last(); math.Abs(last.Time-9.9) > 1e-9 {
		t.Errorf("expected newest point at t=9.9, got %f", last.Time)
	}
}

func TestComparator_Reset(t *testing.T) {
	c := NewComparator(physics.NewDefaultFreeFall(), 0, 0)
	s := physics.NewBodyState(100, 0)
	c.Observe(s, 5)
	c.Reset()

	if len(c.Samples()) != 0 {
		t.Error("expected no samples after reset")
	}
	if _, ok := c.Observe(s, 0); !ok {
		t.Error("first observation after reset must sample")
	}
}
