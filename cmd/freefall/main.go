package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	world      string
	ball       string
	height     float64
	velocity   float64
	gravity    float64
	drag       float64
	mass       float64
	dt         float64
	maxTime    float64
	integrator string
	liveUpdate bool
	noSave     bool
	points     int
	workers    int
	svgWidth   int
	svgHeight  int
	svgOutput  string
	svgField   string
)

// main registers the freefall commands and runs the live view when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "freefall",
		Short:             "free-fall lab: numerical drops checked against the closed form",
		PersistentPreRunE: setupLogging,
		RunE:              runLive,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".freefall", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	addScenarioFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drop one body until it lands and compare with the closed form",
		RunE:  runDrop,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive drop in the terminal",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "closed-form fall time, impact and terminal velocity",
		RunE:  runSolve,
	}
	addScenarioFlags(solveCmd)
	solveCmd.Flags().IntVar(&points, "points", 0, "print an analytic trajectory with this many points")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "drop the same body with several integrators",
		RunE:  runCompare,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "drop every world and ball preset in parallel",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = unlimited)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot height and velocity of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write an SVG chart of simulated vs analytic motion",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOutput, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&svgField, "field", "height", "height or velocity")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list world and ball presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, solveCmd, compareCmd, sweepCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&world, "world", "breeze", "world preset")
	f.StringVar(&ball, "ball", "standard", "ball preset")
	f.Float64Var(&height, "h0", 100, "release height (m)")
	f.Float64Var(&velocity, "v0", 0, "initial downward velocity (m/s)")
	f.Float64Var(&gravity, "gravity", 9.81, "gravity (m/s^2), overrides the world preset")
	f.Float64Var(&drag, "drag", 0.5, "linear drag coefficient (kg/s), overrides the world preset")
	f.Float64Var(&mass, "mass", 1.0, "mass (kg), overrides the ball preset")
	f.Float64Var(&dt, "dt", 1.0/60, "timestep (s)")
	f.Float64Var(&maxTime, "max-time", 600, "stop a run that has not landed after this long (s)")
	f.StringVar(&integrator, "integrator", "symplectic", "integrator (symplectic|euler|rk4|verlet|leapfrog)")
	f.BoolVar(&liveUpdate, "live-update", true, "allow editing parameters while the body falls")
}
