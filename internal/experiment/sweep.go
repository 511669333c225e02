package experiment

import (
	"context"

	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

// Report summarizes one finished scenario against the closed form.
type Report struct {
	Name   string
	World  string
	Ball   string
	Result *sim.Result
}

func (r Report) FallTimeError() float64       { return r.Result.FallTimeError() }
func (r Report) ImpactVelocityError() float64 { return r.Result.ImpactVelocityError() }

// CompareIntegrators drops the same body once per named integrator.
func CompareIntegrators(ctx context.Context, reg *Registry, model *physics.FreeFall, b0 physics.BodyState, cfg sim.Config, names []string) ([]Report, error) {
	scenarios := make([]sim.Scenario, 0, len(names))
	for _, name := range names {
		integ, err := reg.GetIntegrator(name)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sim.Scenario{Name: name, Model: model, Initial: b0, Integrator: integ})
	}

	return runScenarios(ctx, scenarios, cfg, 0, func(i int) (string, string) { return "", "" })
}

// PresetScenarios pairs every world preset with every ball preset.
func PresetScenarios(h0, v0 float64) ([]sim.Scenario, [][2]string) {
	scenarios := make([]sim.Scenario, 0, len(config.Worlds)*len(config.Balls))
	labels := make([][2]string, 0, cap(scenarios))

	for _, w := range config.Worlds {
		for _, b := range config.Balls {
			model := physics.NewFreeFall(
				physics.WorldParameters{Gravity: w.Gravity, DragCoefficient: w.Drag},
				physics.BodyParameters{Mass: b.Mass},
			)
			scenarios = append(scenarios, sim.Scenario{
				Name:    w.Name + "/" + b.Name,
				Model:   model,
				Initial: physics.NewBodyState(h0, v0),
			})
			labels = append(labels, [2]string{w.Name, b.Name})
		}
	}
	return scenarios, labels
}

// SweepPresets runs every preset combination with the named integrator.
func SweepPresets(ctx context.Context, reg *Registry, integrator string, h0, v0 float64, cfg sim.Config, workers int) ([]Report, error) {
	scenarios, labels := PresetScenarios(h0, v0)
	for i := range scenarios {
		integ, err := reg.GetIntegrator(integrator)
		if err != nil {
			return nil, err
		}
		scenarios[i].Integrator = integ
	}

	return runScenarios(ctx, scenarios, cfg, workers, func(i int) (string, string) {
		return labels[i][0], labels[i][1]
	})
}

func runScenarios(ctx context.Context, scenarios []sim.Scenario, cfg sim.Config, workers int, label func(int) (string, string)) ([]Report, error) {
	ens := sim.NewEnsemble(cfg, workers)
	ens.Metrics = DefaultMetrics

	results, err := ens.Run(ctx, scenarios)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, len(results))
	for i, res := range results {
		world, ball := label(i)
		reports[i] = Report{Name: scenarios[i].Name, World: world, Ball: ball, Result: res}
	}
	return reports, nil
}
