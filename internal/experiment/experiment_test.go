package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	names := reg.ListIntegrators()
	if len(names) != 5 {
		t.Errorf("expected 5 integrators, got %v", names)
	}
	for _, name := range names {
		if _, err := reg.GetIntegrator(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	if _, err := reg.GetIntegrator("rk45"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected an error before setup")
	}
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Landed || math.Abs(result.Elapsed-7.037) > 0.05 {
		t.Errorf("unexpected fall time %f", result.Elapsed)
	}
	for _, name := range []string{"dissipated_j", "energy_drift", "peak_velocity", "stability"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if result.Metrics["stability"] != 1 {
		t.Errorf("expected a fully stable run, got %f", result.Metrics["stability"])
	}
}

func TestExperiment_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mass = 0
	if _, err := New(cfg); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Integrator = "magic"
	exp, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := exp.Setup(NewRegistry()); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestCompareIntegrators(t *testing.T) {
	model := physics.NewDefaultFreeFall()
	reg := NewRegistry()

	reports, err := CompareIntegrators(context.Background(), reg, model, physics.NewBodyState(100, 0), sim.DefaultConfig(), reg.ListIntegrators())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	for _, r := range reports {
		if !r.Result.Landed {
			t.Errorf("%s: did not land", r.Name)
			continue
		}
		if e := r.FallTimeError(); e > 1 {
			t.Errorf("%s: fall time error %.3f%% too large", r.Name, e)
		}
	}
}

func TestSweepPresets(t *testing.T) {
	reports, err := SweepPresets(context.Background(), NewRegistry(), "symplectic", 100, 0, sim.DefaultConfig(), 4)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if len(reports) != len(config.Worlds)*len(config.Balls) {
		t.Fatalf("expected %d reports, got %d", len(config.Worlds)*len(config.Balls), len(reports))
	}

	byName := make(map[string]Report)
	for _, r := range reports {
		byName[r.Name] = r
		if r.World == "" || r.Ball == "" {
			t.Errorf("%s: missing labels", r.Name)
		}
	}

	// Heavier balls fall faster through the same air.
	light, heavy := byName["high-drag/light"], byName["high-drag/heavy"]
	if light.Result.Elapsed <= heavy.Result.Elapsed {
		t.Errorf("light %.3fs should fall slower than heavy %.3fs", light.Result.Elapsed, heavy.Result.Elapsed)
	}

	// Mass does not matter in a vacuum.
	a, b := byName["ideal/light"], byName["ideal/heavy"]
	if a.Result.Ticks != b.Result.Ticks {
		t.Errorf("ideal world should ignore mass: %d vs %d ticks", a.Result.Ticks, b.Result.Ticks)
	}
}

func TestSweepPresets_UnknownIntegrator(t *testing.T) {
	_, err := SweepPresets(context.Background(), NewRegistry(), "magic", 100, 0, sim.DefaultConfig(), 0)
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
