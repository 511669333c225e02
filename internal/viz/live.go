package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

const (
	fps          = 60
	canvasWidth  = 24
	canvasHeight = 20
	chartPoints  = 120
	maxViewSpan  = 200.0
)

var paramKeys = []string{"gravity", "drag", "mass"}

// paramFloor is the smallest value up/down can reach; paramStep is the
// smallest increment.
var (
	paramFloor = map[string]float64{"gravity": 0.1, "drag": 0, "mass": 0.05}
	paramStep  = map[string]float64{"gravity": 0.1, "drag": 0.05, "mass": 0.05}
)

type TickMsg time.Time

// Model is one interactive drop. The parameter handle is shared with the
// simulator and comparator, so edits apply on the next frame.
type Model struct {
	cfg        *config.Config
	model      *physics.FreeFall
	params     dynamo.Configurable
	simulator  *sim.Simulator
	comparator *metrics.Comparator
	camera     *Camera
	canvas     *Canvas

	body     physics.BodyState
	t        float64
	ticks    int
	running  bool
	landed   bool
	overlay  bool
	selected int
	analysis *Analysis
}

// NewModel builds the view from cfg. A nil integrator uses the engine's
// semi-implicit Euler step.
func NewModel(cfg *config.Config, integ dynamo.Integrator) Model {
	model := cfg.Model()
	m := Model{
		cfg:        cfg,
		model:      model,
		params:     model,
		simulator:  sim.New(model, integ),
		comparator: metrics.NewComparator(model, cfg.SampleInterval, cfg.HistoryCapacity),
		camera:     NewCamera(fps),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		overlay:    true,
	}
	m.restart()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.landed {
				m.running = !m.running
			}
		case "r":
			m.restart()
		case "w":
			w := config.NextWorld(m.cfg.World)
			_ = m.cfg.ApplyWorld(w.Name)
			m.model.World = physics.WorldParameters{Gravity: w.Gravity, DragCoefficient: w.Drag}
			m.restart()
		case "b":
			b := config.NextBall(m.cfg.Ball)
			_ = m.cfg.ApplyBall(b.Name)
			m.model.Body = physics.BodyParameters{Mass: b.Mass}
			m.restart()
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "a":
			m.overlay = !m.overlay
		}
	case TickMsg:
		if m.running && !m.landed {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the body one frame.
func (m *Model) step() {
	m.body = m.simulator.Step(m.body, m.t, m.cfg.Dt)
	m.ticks++
	m.t = float64(m.ticks) * m.cfg.Dt

	if !m.body.Vector().IsValid() {
		m.running = false
		return
	}

	m.comparator.Observe(m.body, m.t)
	m.camera.Follow(m.viewTarget())

	if m.body.Grounded() {
		if last, ok := m.comparator.Simulated().Last(); !ok || last.Time != m.t {
			m.comparator.Compare(m.body, m.t)
		}
		m.landed = true
		m.running = false
		a := NewAnalysis(m.model, m.body, m.t)
		m.analysis = &a
	}
}

func (m *Model) restart() {
	m.body = m.cfg.Initial()
	m.t = 0
	m.ticks = 0
	m.running = true
	m.landed = false
	m.analysis = nil
	m.comparator.Reset()
	m.comparator.Observe(m.body, 0)
	m.camera.Snap(m.viewTarget())
}

// adjustParam nudges the selected parameter by 5% (at least one step)
// in direction dir. The body keeps falling from where it is. Parameters
// stay fixed for the run when live updates are off.
func (m *Model) adjustParam(dir float64) {
	if !m.cfg.LiveUpdate {
		return
	}
	key := paramKeys[m.selected]
	val := m.params.GetParams()[key]
	step := math.Max(math.Abs(val)*0.05, paramStep[key])
	next := math.Max(val+dir*step, paramFloor[key])
	if err := m.params.SetParam(key, next); err != nil {
		return
	}

	switch key {
	case "gravity":
		m.cfg.Gravity = next
	case "drag":
		m.cfg.Drag = next
	case "mass":
		m.cfg.Mass = next
	}
}

func (m *Model) viewSpan() float64 {
	return math.Min(math.Max(m.body.InitialHeight, 10)*1.1, maxViewSpan)
}

// viewTarget is the altitude the bottom of the viewport should rest at.
func (m *Model) viewTarget() float64 {
	return math.Max(m.body.Height-m.viewSpan()/2, 0)
}

// toPixel maps an altitude to a canvas row.
func (m *Model) toPixel(h float64) int {
	ph := m.canvas.PixelHeight() - 4
	return ph - int((h-m.camera.Position())/m.viewSpan()*float64(ph))
}

func (m *Model) draw() {
	m.canvas.Clear()
	pw := m.canvas.PixelWidth()

	ground := m.toPixel(0)
	if ground < m.canvas.PixelHeight() {
		m.canvas.DrawLine(0, ground+2, pw-1, ground+2)
	}

	simX, exactX := pw/3, 2*pw/3
	if !m.overlay {
		simX = pw / 2
	}
	m.canvas.DrawDisc(simX, m.toPixel(m.body.Height), 2)

	if m.overlay {
		exact := m.analyticNow()
		m.canvas.DrawRing(exactX, m.toPixel(exact.Height), 2)
	}
}

func (m *Model) analyticNow() analytic.Result {
	w, b := m.model.World, m.model.Body
	r := analytic.EvaluateAt(m.t, m.body.InitialHeight, m.body.InitialVelocity, w.Gravity, w.DragCoefficient, b.Mass)
	r.Height = math.Max(r.Height, 0)
	return r
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("FREEFALL  %s / %s", strings.ToUpper(m.cfg.World), strings.ToUpper(m.cfg.Ball))) + "\n")

	switch {
	case m.landed:
		s.WriteString(statusLanded.Render("LANDED") + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("FALLING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", FormatClock(m.t))
	row("Height", fmt.Sprintf("%.3f m", m.body.Height))
	row("Velocity", fmt.Sprintf("%.3f m/s", m.body.Velocity))

	if m.overlay {
		exact := m.analyticNow()
		s.WriteString(labelStyle.Render("Analytic") + analyticStyle.Render(fmt.Sprintf("%.3f m  %.3f m/s", exact.Height, exact.Velocity)) + "\n")
		if samples := m.comparator.Samples(); len(samples) > 0 {
			sample := samples[len(samples)-1]
			row("Error h / v", FormatPercent(sample.HeightError)+" / "+FormatPercent(sample.VelocityError))
		}
	}

	w, b := m.model.World, m.model.Body
	row("Terminal v", FormatValue(analytic.TerminalVelocity(w.Gravity, w.DragCoefficient, b.Mass))+" m/s")
	energy := metrics.NewEnergySnapshot(m.body.Height, m.body.Velocity, m.body.InitialHeight, m.body.InitialVelocity, w.Gravity, b.Mass)
	row("Energy", fmt.Sprintf("%.1f J (%.1f%%)", energy.TotalCurrent(), energy.Efficiency()))

	if m.cfg.LiveUpdate {
		s.WriteString("\nPARAMETERS\n")
	} else {
		s.WriteString("\nPARAMETERS " + statusPaused.Render("[locked]") + "\n")
	}
	params := m.params.GetParams()
	for i, k := range paramKeys {
		line := fmt.Sprintf("%-8s %8.3f", k, params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if chart := m.chart(); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Restart W:World B:Ball\nTAB/↑↓:Tune A:Overlay Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.analysis != nil {
		return lipgloss.JoinVertical(lipgloss.Left, mainView, analysisStyle.Render(m.analysis.Render()))
	}
	return mainView
}

// chart plots the most recent heights of both models.
func (m Model) chart() string {
	simPts := m.comparator.Simulated().Items()
	if len(simPts) < 2 {
		return ""
	}
	exactPts := m.comparator.Analytic().Items()
	if len(simPts) > chartPoints {
		simPts = simPts[len(simPts)-chartPoints:]
		exactPts = exactPts[len(exactPts)-chartPoints:]
	}

	simH := make([]float64, len(simPts))
	for i, p := range simPts {
		simH[i] = p.Height
	}
	if !m.overlay {
		return asciigraph.Plot(simH, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption("height (m)"))
	}

	exactH := make([]float64, len(exactPts))
	for i, p := range exactPts {
		exactH[i] = math.Max(p.Height, 0)
	}
	return asciigraph.PlotMany([][]float64{simH, exactH},
		asciigraph.Height(6), asciigraph.Width(36),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.Caption("height (m): sim vs analytic"))
}

// Landed reports whether the body has reached the floor.
func (m Model) Landed() bool { return m.landed }

func (m Model) Body() physics.BodyState { return m.body }

func (m Model) Analysis() *Analysis { return m.analysis }
