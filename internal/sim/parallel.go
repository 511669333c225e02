package sim

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// Scenario is one independent body to simulate.
type Scenario struct {
	Name       string
	Model      *physics.FreeFall
	Initial    physics.BodyState
	Integrator dynamo.Integrator
}

// Ensemble runs scenarios concurrently. Each run gets its own copy of the
// scenario's model, so bodies never share parameters.
type Ensemble struct {
	cfg     Config
	workers int

	// Metrics, when set, builds fresh metrics for each run.
	Metrics func(model *physics.FreeFall) []Metric
}

func NewEnsemble(cfg Config, workers int) *Ensemble {
	return &Ensemble{cfg: cfg, workers: workers}
}

// Run returns results in scenario order. The first failing run cancels
// the rest.
func (e *Ensemble) Run(ctx context.Context, scenarios []Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	eg, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		eg.SetLimit(e.workers)
	}

	for i, sc := range scenarios {
		i, sc := i, sc
		eg.Go(func() error {
			model := sc.Model.Clone()
			s := New(model, sc.Integrator)
			if e.Metrics != nil {
				for _, m := range e.Metrics(model) {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, sc.Initial, e.cfg)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("ensemble finished", "scenarios", len(scenarios))
	return results, nil
}
