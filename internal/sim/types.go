package sim

import (
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
)

type Metric interface {
	Name() string
	Observe(s physics.BodyState, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s physics.BodyState, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s physics.BodyState, t float64)

func (f ObserverFunc) OnStep(s physics.BodyState, t float64) { f(s, t) }

type Config struct {
	Dt              float64
	MaxDuration     float64
	SampleInterval  float64
	HistoryCapacity int
	ValidateState   bool
}

func DefaultConfig() Config {
	return Config{
		Dt:              1.0 / 60,
		MaxDuration:     600,
		SampleInterval:  metrics.DefaultSampleInterval,
		HistoryCapacity: metrics.DefaultHistoryCapacity,
		ValidateState:   true,
	}
}

type Result struct {
	Ticks   int
	Elapsed float64
	Landed  bool
	Final   physics.BodyState

	ImpactVelocity float64

	// Closed-form reference for the parameters in effect when the run ended.
	AnalyticFallTime       float64
	AnalyticFound          bool
	AnalyticImpactVelocity float64
	TerminalVelocity       float64

	Samples   []metrics.Sample
	Simulated []metrics.Point
	Analytic  []metrics.Point

	Energy  metrics.EnergySnapshot
	Metrics map[string]float64
}

// FallTimeError is the relative error of the simulated fall time, or NaN
// when either side has no landing.
func (r *Result) FallTimeError() float64 {
	if !r.Landed || !r.AnalyticFound {
		return nan
	}
	return metrics.RelativeError(r.Elapsed, r.AnalyticFallTime)
}

// ImpactVelocityError is the relative error of the simulated impact
// velocity, or NaN when either side has no landing.
func (r *Result) ImpactVelocityError() float64 {
	if !r.Landed || !r.AnalyticFound {
		return nan
	}
	return metrics.RelativeError(r.ImpactVelocity, r.AnalyticImpactVelocity)
}
