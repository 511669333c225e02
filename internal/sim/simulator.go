package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
)

var nan = math.NaN()

// Simulator drives one body with fixed ticks until it reaches the floor.
// The model is read on every tick, so parameter edits made between ticks
// apply to the next step.
type Simulator struct {
	model      *physics.FreeFall
	integrator dynamo.Integrator
	metrics    []Metric
	observers  []Observer
}

// New returns a simulator for model. A nil integrator selects the
// semi-implicit Euler step of physics.Advance.
func New(model *physics.FreeFall, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		model:      model,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Model() *physics.FreeFall { return s.model }

// Step advances b by dt from time t.
func (s *Simulator) Step(b physics.BodyState, t, dt float64) physics.BodyState {
	if s.integrator == nil {
		return s.model.Advance(b, dt)
	}
	return b.WithVector(s.integrator.Step(s.model, b.Vector(), t, dt))
}

func (s *Simulator) Run(ctx context.Context, b0 physics.BodyState, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	cmp := metrics.NewComparator(s.model, cfg.SampleInterval, cfg.HistoryCapacity)
	result := &Result{Metrics: make(map[string]float64)}

	slog.Debug("run started",
		"height", b0.Height, "velocity", b0.Velocity,
		"gravity", s.model.World.Gravity, "drag", s.model.World.DragCoefficient,
		"mass", s.model.Body.Mass, "dt", cfg.Dt)

	b := b0
	t := 0.0
	s.observe(b, t)
	cmp.Observe(b, t)

	for !b.Grounded() && t < cfg.MaxDuration {
		select {
		case <-ctx.Done():
			s.finish(result, cmp, b, t)
			return result, ctx.Err()
		default:
		}

		next := s.Step(b, t, cfg.Dt)
		if cfg.ValidateState && !next.Vector().IsValid() {
			s.finish(result, cmp, b, t)
			return result, &dynamo.SimError{
				Step:    result.Ticks,
				Time:    t,
				Message: "non-finite body state",
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		b = next
		result.Ticks++
		t = float64(result.Ticks) * cfg.Dt

		s.observe(b, t)
		cmp.Observe(b, t)
	}

	if last, ok := cmp.Simulated().Last(); !ok || last.Time != t {
		cmp.Compare(b, t)
	}

	s.finish(result, cmp, b, t)
	if result.Landed {
		slog.Debug("body landed", "time", t, "ticks", result.Ticks, "impact_velocity", b.Velocity)
	} else {
		slog.Debug("run stopped before landing", "time", t, "height", b.Height)
	}
	return result, nil
}

// RunWithCallback steps the body until it lands, the duration runs out or
// callback returns false. No history is kept.
func (s *Simulator) RunWithCallback(ctx context.Context, b0 physics.BodyState, cfg Config, callback func(physics.BodyState, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	b := b0
	for tick := 0; ; tick++ {
		t := float64(tick) * cfg.Dt
		if !callback(b, t) || b.Grounded() || t >= cfg.MaxDuration {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b = s.Step(b, t, cfg.Dt)
		if cfg.ValidateState && !b.Vector().IsValid() {
			return &dynamo.SimError{Step: tick, Time: t, Message: "non-finite body state", Wrapped: dynamo.ErrInvalidState}
		}
	}
}

func (s *Simulator) observe(b physics.BodyState, t float64) {
	for _, m := range s.metrics {
		m.Observe(b, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(b, t)
	}
}

func (s *Simulator) finish(r *Result, cmp *metrics.Comparator, b physics.BodyState, t float64) {
	w, body := s.model.World, s.model.Body

	r.Final = b
	r.Elapsed = t
	r.Landed = b.Grounded()
	r.ImpactVelocity = nan
	if r.Landed {
		r.ImpactVelocity = b.Velocity
	}

	r.AnalyticFallTime, r.AnalyticFound = analytic.FindFallTime(
		b.InitialHeight, b.InitialVelocity, w.Gravity, w.DragCoefficient, body.Mass,
		analytic.DefaultHorizon, analytic.DefaultTolerance)
	r.AnalyticImpactVelocity = nan
	if r.AnalyticFound {
		r.AnalyticImpactVelocity = analytic.EvaluateAt(r.AnalyticFallTime,
			b.InitialHeight, b.InitialVelocity, w.Gravity, w.DragCoefficient, body.Mass).Velocity
	}
	r.TerminalVelocity = analytic.TerminalVelocity(w.Gravity, w.DragCoefficient, body.Mass)

	r.Samples = cmp.Samples()
	r.Simulated = cmp.Simulated().Items()
	r.Analytic = cmp.Analytic().Items()
	r.Energy = metrics.NewEnergySnapshot(b.Height, b.Velocity, b.InitialHeight, b.InitialVelocity, w.Gravity, body.Mass)

	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if cfg.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %f: %w", cfg.MaxDuration, dynamo.ErrParameterBounds)
	}
	return nil
}
