package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

const (
	DefaultWorld       = "breeze"
	DefaultBall        = "standard"
	DefaultIntegrator  = "symplectic"
	DefaultHeight      = 100.0
	DefaultDt          = 1.0 / 60
	DefaultMaxDuration = 600.0
)

type Config struct {
	World           string  `yaml:"world"`
	Ball            string  `yaml:"ball"`
	Gravity         float64 `yaml:"gravity"`
	Drag            float64 `yaml:"drag"`
	Mass            float64 `yaml:"mass"`
	Height          float64 `yaml:"height"`
	Velocity        float64 `yaml:"velocity"`
	Integrator      string  `yaml:"integrator"`
	Dt              float64 `yaml:"dt"`
	MaxDuration     float64 `yaml:"max_duration"`
	SampleInterval  float64 `yaml:"sample_interval"`
	HistoryCapacity int     `yaml:"history_capacity"`
	LiveUpdate      bool    `yaml:"live_update"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		Height:          DefaultHeight,
		Integrator:      DefaultIntegrator,
		Dt:              DefaultDt,
		MaxDuration:     DefaultMaxDuration,
		SampleInterval:  metrics.DefaultSampleInterval,
		HistoryCapacity: metrics.DefaultHistoryCapacity,
		LiveUpdate:      true,
	}
	// Both defaults exist in the preset tables.
	_ = cfg.ApplyWorld(DefaultWorld)
	_ = cfg.ApplyBall(DefaultBall)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyWorld copies gravity and drag from the named world preset.
func (c *Config) ApplyWorld(name string) error {
	w, err := GetWorld(name)
	if err != nil {
		return err
	}
	c.World = w.Name
	c.Gravity = w.Gravity
	c.Drag = w.Drag
	return nil
}

// ApplyBall copies the mass from the named ball preset.
func (c *Config) ApplyBall(name string) error {
	b, err := GetBall(name)
	if err != nil {
		return err
	}
	c.Ball = b.Name
	c.Mass = b.Mass
	return nil
}

// Validate rejects parameters the engine does not check itself.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		val  float64
		ok   bool
	}{
		{"gravity", c.Gravity, c.Gravity > 0},
		{"drag", c.Drag, c.Drag >= 0},
		{"mass", c.Mass, c.Mass > 0},
		{"height", c.Height, c.Height >= 0},
		{"velocity", c.Velocity, true},
		{"dt", c.Dt, c.Dt > 0},
		{"max_duration", c.MaxDuration, c.MaxDuration > 0},
		{"sample_interval", c.SampleInterval, c.SampleInterval > 0},
	}

	for _, chk := range checks {
		if math.IsNaN(chk.val) || math.IsInf(chk.val, 0) || !chk.ok {
			return fmt.Errorf("invalid %s %v: %w", chk.name, chk.val, dynamo.ErrParameterBounds)
		}
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("invalid history_capacity %d: %w", c.HistoryCapacity, dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) Model() *physics.FreeFall {
	return physics.NewFreeFall(
		physics.WorldParameters{Gravity: c.Gravity, DragCoefficient: c.Drag},
		physics.BodyParameters{Mass: c.Mass},
	)
}

func (c *Config) Initial() physics.BodyState {
	return physics.NewBodyState(c.Height, c.Velocity)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:              c.Dt,
		MaxDuration:     c.MaxDuration,
		SampleInterval:  c.SampleInterval,
		HistoryCapacity: c.HistoryCapacity,
		ValidateState:   true,
	}
}
