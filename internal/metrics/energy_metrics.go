package metrics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// Dissipation reports the energy lost to drag at the latest observation.
type Dissipation struct {
	name  string
	model *physics.FreeFall
	last  float64
}

func NewDissipation(model *physics.FreeFall) *Dissipation {
	return &Dissipation{name: "dissipated_j", model: model}
}

func (d *Dissipation) Name() string { return d.name }

func (d *Dissipation) Observe(s physics.BodyState, t float64) {
	e := NewEnergySnapshot(s.Height, s.Velocity, s.InitialHeight, s.InitialVelocity, d.model.World.Gravity, d.model.Body.Mass)
	d.last = e.Dissipated
}

func (d *Dissipation) Value() float64 { return d.last }

func (d *Dissipation) Reset() { d.last = 0 }

// EnergyDrift is the largest relative change of total mechanical energy
// seen so far. For a drag-free world it measures integrator error.
type EnergyDrift struct {
	name          string
	system        dynamo.Hamiltonian
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(system dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", system: system}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s physics.BodyState, t float64) {
	energy := e.system.Energy(s.Vector())

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakVelocity is the largest downward speed observed.
type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(s physics.BodyState, t float64) {
	p.peak = math.Max(p.peak, s.Velocity)
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }
