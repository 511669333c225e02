package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/freefall/internal/export"
	"github.com/san-kum/freefall/internal/storage"
	"github.com/san-kum/freefall/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWORLD\tBALL\tTIME\tH0\tFALL\tANALYTIC\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fm\t%s\t%s\t%s\n",
			run.ID,
			run.World,
			run.Ball,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Height,
			clockPtr(run.FallTime),
			clockPtr(run.AnalyticFallTime),
			run.Integrator,
		)
	}

	return w.Flush()
}

func clockPtr(v *float64) string {
	if v == nil {
		return "—"
	}
	return viz.FormatClock(*v)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(rows) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("world: %s, ball: %s\n", meta.World, meta.Ball)
	fmt.Printf("samples: %d\n\n", len(rows))

	simH, exactH := make([]float64, len(rows)), make([]float64, len(rows))
	simV, exactV := make([]float64, len(rows)), make([]float64, len(rows))
	for i, r := range rows {
		simH[i], exactH[i] = r.SimHeight, r.AnalyticHeight
		simV[i], exactV[i] = r.SimVelocity, r.AnalyticVelocity
	}

	for _, chart := range []struct {
		caption string
		series  [][]float64
	}{
		{"height (m): simulated (green) vs analytic (yellow)", [][]float64{simH, exactH}},
		{"velocity (m/s): simulated (green) vs analytic (yellow)", [][]float64{simV, exactV}},
	} {
		graph := asciigraph.PlotMany(chart.series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
			asciigraph.Caption(chart.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, rows)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, rows)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	var series []export.Series
	var title string
	switch svgField {
	case "height":
		series = export.HeightSeries(rows)
		title = fmt.Sprintf("%s: height (m)", meta.ID)
	case "velocity":
		series = export.VelocitySeries(rows)
		title = fmt.Sprintf("%s: velocity (m/s)", meta.ID)
	default:
		return fmt.Errorf("unknown field %q (height|velocity)", svgField)
	}

	svg := export.ChartToSVG(series, svgWidth, svgHeight, title)
	if svg == "" {
		return fmt.Errorf("no data to draw")
	}

	out := svgOutput
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
