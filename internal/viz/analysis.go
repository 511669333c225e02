package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/freefall/internal/analytic"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

// Analysis compares a finished drop with the closed form for the
// parameters in effect at impact. Undefined quantities are NaN.
type Analysis struct {
	SimFallTime            float64
	AnalyticFallTime       float64
	SimImpactVelocity      float64
	AnalyticImpactVelocity float64
	TerminalVelocity       float64
	Energy                 metrics.EnergySnapshot
}

func NewAnalysis(model *physics.FreeFall, b physics.BodyState, t float64) Analysis {
	w, body := model.World, model.Body
	a := Analysis{
		SimFallTime:            math.NaN(),
		SimImpactVelocity:      math.NaN(),
		AnalyticImpactVelocity: math.NaN(),
		TerminalVelocity:       analytic.TerminalVelocity(w.Gravity, w.DragCoefficient, body.Mass),
		Energy:                 metrics.NewEnergySnapshot(b.Height, b.Velocity, b.InitialHeight, b.InitialVelocity, w.Gravity, body.Mass),
	}
	if b.Grounded() {
		a.SimFallTime = t
		a.SimImpactVelocity = b.Velocity
	}

	a.AnalyticFallTime, _ = analytic.FindFallTime(b.InitialHeight, b.InitialVelocity, w.Gravity, w.DragCoefficient, body.Mass,
		analytic.DefaultHorizon, analytic.DefaultTolerance)
	if !math.IsNaN(a.AnalyticFallTime) {
		a.AnalyticImpactVelocity = analytic.EvaluateAt(a.AnalyticFallTime, b.InitialHeight, b.InitialVelocity,
			w.Gravity, w.DragCoefficient, body.Mass).Velocity
	}
	return a
}

func AnalysisFromResult(r *sim.Result) Analysis {
	a := Analysis{
		SimFallTime:            math.NaN(),
		SimImpactVelocity:      r.ImpactVelocity,
		AnalyticFallTime:       math.NaN(),
		AnalyticImpactVelocity: r.AnalyticImpactVelocity,
		TerminalVelocity:       r.TerminalVelocity,
		Energy:                 r.Energy,
	}
	if r.Landed {
		a.SimFallTime = r.Elapsed
	}
	if r.AnalyticFound {
		a.AnalyticFallTime = r.AnalyticFallTime
	}
	return a
}

func (a Analysis) FallTimeError() float64 {
	if math.IsNaN(a.SimFallTime) || math.IsNaN(a.AnalyticFallTime) {
		return math.NaN()
	}
	return metrics.RelativeError(a.SimFallTime, a.AnalyticFallTime)
}

func (a Analysis) ImpactVelocityError() float64 {
	if math.IsNaN(a.SimImpactVelocity) || math.IsNaN(a.AnalyticImpactVelocity) {
		return math.NaN()
	}
	return metrics.RelativeError(a.SimImpactVelocity, a.AnalyticImpactVelocity)
}

// Render lays the analysis out as a plain text table.
func (a Analysis) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-18s %12s %12s %10s\n", "", "simulated", "analytic", "error")
	fmt.Fprintf(&sb, "%-18s %12s %12s %10s\n", "fall time (s)",
		FormatValue(a.SimFallTime), FormatValue(a.AnalyticFallTime), FormatPercent(a.FallTimeError()))
	fmt.Fprintf(&sb, "%-18s %12s %12s %10s\n", "impact v (m/s)",
		FormatValue(a.SimImpactVelocity), FormatValue(a.AnalyticImpactVelocity), FormatPercent(a.ImpactVelocityError()))
	fmt.Fprintf(&sb, "%-18s %12s\n", "terminal v (m/s)", FormatValue(a.TerminalVelocity))
	fmt.Fprintf(&sb, "%-18s %12.2f of %.2f J (%.1f%% kept)",
		"energy", a.Energy.TotalCurrent(), a.Energy.TotalInitial(), a.Energy.Efficiency())
	return sb.String()
}
