package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/dynamo"
)

func newScenarioCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile = ""
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(newScenarioCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drop.yaml")
	fileCfg := config.DefaultConfig()
	fileCfg.Height = 250
	fileCfg.Drag = 1.5
	if err := config.Save(path, fileCfg); err != nil {
		t.Fatal(err)
	}

	cmd := newScenarioCmd(t, "--config", path, "--ball", "heavy", "--drag", "0.25", "--dt", "0.01")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Height != 250 {
		t.Errorf("height from file: got %f", cfg.Height)
	}
	if cfg.Mass != 5.0 || cfg.Ball != "heavy" {
		t.Errorf("ball preset: got %s m=%f", cfg.Ball, cfg.Mass)
	}
	if cfg.Drag != 0.25 {
		t.Errorf("explicit drag should win, got %f", cfg.Drag)
	}
	if cfg.Dt != 0.01 {
		t.Errorf("dt flag: got %f", cfg.Dt)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, err := resolveConfig(newScenarioCmd(t, "--world", "jupiter")); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := resolveConfig(newScenarioCmd(t, "--mass", "0")); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cmd := newScenarioCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := resolveConfig(cmd); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file error, got %v", err)
	}
}

func TestResolveConfig_LiveUpdateFlag(t *testing.T) {
	cfg, err := resolveConfig(newScenarioCmd(t, "--live-update=false"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LiveUpdate {
		t.Error("expected live updates to be off")
	}
}
