package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{
	"time",
	"sim_height", "sim_velocity",
	"analytic_height", "analytic_velocity",
	"height_error_pct", "velocity_error_pct",
	"dissipated_j",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run. Quantities that are undefined for
// the run (no landing, no terminal velocity) are omitted.
type RunMetadata struct {
	ID         string    `json:"id"`
	World      string    `json:"world"`
	Ball       string    `json:"ball"`
	Timestamp  time.Time `json:"timestamp"`
	Integrator string    `json:"integrator"`

	Gravity  float64 `json:"gravity"`
	Drag     float64 `json:"drag"`
	Mass     float64 `json:"mass"`
	Height   float64 `json:"height"`
	Velocity float64 `json:"velocity"`
	Dt       float64 `json:"dt"`
	Ticks    int     `json:"ticks"`
	Landed   bool    `json:"landed"`

	FallTime               *float64 `json:"fall_time,omitempty"`
	AnalyticFallTime       *float64 `json:"analytic_fall_time,omitempty"`
	ImpactVelocity         *float64 `json:"impact_velocity,omitempty"`
	AnalyticImpactVelocity *float64 `json:"analytic_impact_velocity,omitempty"`
	TerminalVelocity       *float64 `json:"terminal_velocity,omitempty"`

	Metrics map[string]float64 `json:"metrics"`
}

// NewRunMetadata collects what is worth keeping from a finished run.
func NewRunMetadata(world, ball, integrator string, model *physics.FreeFall, dt float64, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		World:            world,
		Ball:             ball,
		Integrator:       integrator,
		Gravity:          model.World.Gravity,
		Drag:             model.World.DragCoefficient,
		Mass:             model.Body.Mass,
		Height:           result.Final.InitialHeight,
		Velocity:         result.Final.InitialVelocity,
		Dt:               dt,
		Ticks:            result.Ticks,
		Landed:           result.Landed,
		ImpactVelocity:   finite(result.ImpactVelocity),
		TerminalVelocity: finite(result.TerminalVelocity),
		Metrics:          make(map[string]float64, len(result.Metrics)),
	}
	if result.Landed {
		meta.FallTime = finite(result.Elapsed)
	}
	if result.AnalyticFound {
		meta.AnalyticFallTime = finite(result.AnalyticFallTime)
		meta.AnalyticImpactVelocity = finite(result.AnalyticImpactVelocity)
	}
	for name, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[name] = v
		}
	}
	return meta
}

// SampleRow is one line of samples.csv.
type SampleRow struct {
	Time             float64 `json:"time"`
	SimHeight        float64 `json:"sim_height"`
	SimVelocity      float64 `json:"sim_velocity"`
	AnalyticHeight   float64 `json:"analytic_height"`
	AnalyticVelocity float64 `json:"analytic_velocity"`
	HeightError      float64 `json:"height_error_pct"`
	VelocityError    float64 `json:"velocity_error_pct"`
	Dissipated       float64 `json:"dissipated_j"`
}

func RowsFromSamples(samples []metrics.Sample) []SampleRow {
	rows := make([]SampleRow, len(samples))
	for i, s := range samples {
		rows[i] = SampleRow{
			Time:             s.Simulated.Time,
			SimHeight:        s.Simulated.Height,
			SimVelocity:      s.Simulated.Velocity,
			AnalyticHeight:   s.Analytic.Height,
			AnalyticVelocity: s.Analytic.Velocity,
			HeightError:      s.HeightError,
			VelocityError:    s.VelocityError,
			Dissipated:       s.Energy.Dissipated,
		}
	}
	return rows
}

// Save writes a new run directory and returns its id. The id and
// timestamp of meta are assigned here.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.World, uuid.NewString()[:8])
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, samples); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			slog.Warn("failed to remove partial run", "dir", runDir, "err", rmErr)
		}
		return "", fmt.Errorf("save run %s: %w", meta.ID, err)
	}

	slog.Debug("run saved", "id", meta.ID, "samples", len(samples), "dir", runDir)
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, samples []metrics.Sample) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return err
	}
	if err := ExportCSV(csvFile, RowsFromSamples(samples)); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

// List returns stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			slog.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("run %q: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %q metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]SampleRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("run %q: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %q samples: %w", runID, err)
	}

	if len(records) < 2 {
		return []SampleRow{}, nil
	}

	rows := make([]SampleRow, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %q samples line %d: %w", runID, i+2, err)
			}
			vals[j] = v
		}
		rows = append(rows, SampleRow{
			Time:             vals[0],
			SimHeight:        vals[1],
			SimVelocity:      vals[2],
			AnalyticHeight:   vals[3],
			AnalyticVelocity: vals[4],
			HeightError:      vals[5],
			VelocityError:    vals[6],
			Dissipated:       vals[7],
		})
	}

	return rows, nil
}

// ExportCSV writes rows in the samples.csv layout.
func ExportCSV(w io.Writer, rows []SampleRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			formatFloat(r.Time),
			formatFloat(r.SimHeight), formatFloat(r.SimVelocity),
			formatFloat(r.AnalyticHeight), formatFloat(r.AnalyticVelocity),
			formatFloat(r.HeightError), formatFloat(r.VelocityError),
			formatFloat(r.Dissipated),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Run     *RunMetadata `json:"run"`
	Samples []SampleRow  `json:"samples"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, rows []SampleRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Samples: rows})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
