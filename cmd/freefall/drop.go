package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/experiment"
	"github.com/san-kum/freefall/internal/storage"
	"github.com/san-kum/freefall/internal/viz"
)

// resolveConfig layers the scenario: defaults, then the config file, then
// presets named on the command line, then explicit numeric flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("world") {
		if err := cfg.ApplyWorld(world); err != nil {
			return nil, err
		}
	}
	if flags.Changed("ball") {
		if err := cfg.ApplyBall(ball); err != nil {
			return nil, err
		}
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("drag") {
		cfg.Drag = drag
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("h0") {
		cfg.Height = height
	}
	if flags.Changed("v0") {
		cfg.Velocity = velocity
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("max-time") {
		cfg.MaxDuration = maxTime
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("live-update") {
		cfg.LiveUpdate = liveUpdate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runDrop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("dropping %s ball in %s world from %.2fm (g=%.3f, k=%.3f, m=%.3f, %s, dt=%.4f)\n",
		cfg.Ball, cfg.World, cfg.Height, cfg.Gravity, cfg.Drag, cfg.Mass, cfg.Integrator, cfg.Dt)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%d ticks, %d samples)\n\n", time.Since(start), result.Ticks, len(result.Samples))
	if !result.Landed {
		fmt.Printf("body did not land within %s\n\n", viz.FormatClock(cfg.MaxDuration))
	}
	fmt.Println(viz.AnalysisFromResult(result).Render())

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.NewRunMetadata(cfg.World, cfg.Ball, cfg.Integrator, exp.Model(), cfg.Dt, result)
	runID, err := st.Save(meta, result.Samples)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg, integ))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	solver := analytic.NewSolver(cfg.Model())
	fallTime, ok := solver.FallTime(cfg.Height, cfg.Velocity)

	impact := "—"
	if ok {
		impact = viz.FormatValue(solver.At(fallTime, cfg.Height, cfg.Velocity).Velocity)
	}

	fmt.Printf("world %s (g=%.3f, k=%.3f), ball %s (m=%.3f), h0=%.2fm, v0=%.2fm/s\n\n",
		cfg.World, cfg.Gravity, cfg.Drag, cfg.Ball, cfg.Mass, cfg.Height, cfg.Velocity)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "fall time\t%s s\t%s\n", viz.FormatValue(fallTime), clockOrDash(fallTime, ok))
	fmt.Fprintf(w, "impact velocity\t%s m/s\t\n", impact)
	fmt.Fprintf(w, "terminal velocity\t%s m/s\t\n", viz.FormatValue(solver.TerminalVelocity()))
	if cfg.Velocity == 0 && cfg.Gravity > 0 {
		fmt.Fprintf(w, "no-drag fall time\t%.3f s\t\n", analytic.IdealFallTime(cfg.Height, cfg.Gravity))
		fmt.Fprintf(w, "no-drag impact\t%.3f m/s\t\n", analytic.IdealImpactVelocity(cfg.Height, cfg.Gravity))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if points <= 0 {
		return nil
	}

	horizon := fallTime
	if !ok {
		horizon = cfg.MaxDuration
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "t (s)\theight (m)\tvelocity (m/s)\t")
	for _, r := range solver.Trajectory(cfg.Height, cfg.Velocity, horizon, points) {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t\n", r.Time, r.Height, r.Velocity)
	}
	return w.Flush()
}

func clockOrDash(t float64, ok bool) string {
	if !ok {
		return ""
	}
	return viz.FormatClock(t)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = reg.ListIntegrators()
	}

	ctx, cancel := signalContext()
	defer cancel()

	reports, err := experiment.CompareIntegrators(ctx, reg, cfg.Model(), cfg.Initial(), cfg.SimConfig(), names)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s/%s (h0=%.2fm, dt=%.4f)\n\n", cfg.World, cfg.Ball, cfg.Height, cfg.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFALL TIME\tANALYTIC\tERROR\tIMPACT V\tERROR\tDRIFT")
	for _, r := range reports {
		res := r.Result
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2e\n",
			r.Name,
			fallTimeOf(res.Landed, res.Elapsed),
			fallTimeOf(res.AnalyticFound, res.AnalyticFallTime),
			viz.FormatPercent(r.FallTimeError()),
			viz.FormatValue(res.ImpactVelocity),
			viz.FormatPercent(r.ImpactVelocityError()),
			res.Metrics["energy_drift"],
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	reports, err := experiment.SweepPresets(ctx, experiment.NewRegistry(), cfg.Integrator, cfg.Height, cfg.Velocity, cfg.SimConfig(), workers)
	if err != nil {
		return err
	}

	fmt.Printf("%d drops from %.2fm with %s in %v\n\n", len(reports), cfg.Height, cfg.Integrator, time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORLD\tBALL\tFALL TIME\tANALYTIC\tERROR\tIMPACT V\tTERMINAL V\tDISSIPATED")
	for _, r := range reports {
		res := r.Result
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f J\n",
			r.World, r.Ball,
			fallTimeOf(res.Landed, res.Elapsed),
			fallTimeOf(res.AnalyticFound, res.AnalyticFallTime),
			viz.FormatPercent(r.FallTimeError()),
			viz.FormatValue(res.ImpactVelocity),
			viz.FormatValue(res.TerminalVelocity),
			res.Energy.Dissipated,
		)
	}
	return w.Flush()
}

func fallTimeOf(ok bool, t float64) string {
	if !ok {
		return "—"
	}
	return viz.FormatClock(t)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WORLD\tGRAVITY\tDRAG\tDESCRIPTION")
	for _, p := range config.Worlds {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", p.Name, p.Gravity, p.Drag, p.Description)
	}
	fmt.Fprintln(w, "\t\t\t")
	fmt.Fprintln(w, "BALL\tMASS\t\tDESCRIPTION")
	for _, p := range config.Balls {
		fmt.Fprintf(w, "%s\t%.2f\t\t%s\n", p.Name, p.Mass, p.Description)
	}
	return w.Flush()
}
