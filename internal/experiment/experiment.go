package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

// Experiment is one configured drop: a model handle, an integrator and
// the metrics attached to the run.
type Experiment struct {
	cfg       *config.Config
	model     *physics.FreeFall
	simulator *sim.Simulator
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, model: cfg.Model()}, nil
}

func (e *Experiment) Setup(reg *Registry) error {
	integ, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.simulator = sim.New(e.model, integ)
	for _, m := range DefaultMetrics(e.model) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	slog.Debug("experiment started", "world", e.cfg.World, "ball", e.cfg.Ball, "integrator", e.cfg.Integrator)
	return e.simulator.Run(ctx, e.cfg.Initial(), e.cfg.SimConfig())
}

// Model returns the live parameter handle of the experiment.
func (e *Experiment) Model() *physics.FreeFall {
	return e.model
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
