package metrics

import "fmt"

// EnergySnapshot compares the mechanical energy of a body at release and
// at one later instant. The floor is the potential reference.
type EnergySnapshot struct {
	KineticInitial   float64
	PotentialInitial float64
	KineticCurrent   float64
	PotentialCurrent float64
	Dissipated       float64
}

func NewEnergySnapshot(height, velocity, h0, v0, g, m float64) EnergySnapshot {
	e := EnergySnapshot{
		KineticInitial:   0.5 * m * v0 * v0,
		PotentialInitial: m * g * h0,
		KineticCurrent:   0.5 * m * velocity * velocity,
		PotentialCurrent: m * g * height,
	}
	e.Dissipated = e.TotalInitial() - e.TotalCurrent()
	return e
}

func (e EnergySnapshot) TotalInitial() float64 {
	return e.KineticInitial + e.PotentialInitial
}

func (e EnergySnapshot) TotalCurrent() float64 {
	return e.KineticCurrent + e.PotentialCurrent
}

// Efficiency is the percentage of the initial energy still present, or 0
// when there was no initial energy to speak of.
func (e EnergySnapshot) Efficiency() float64 {
	initial := e.TotalInitial()
	if initial <= Epsilon {
		return 0
	}
	return e.TotalCurrent() / initial * 100
}

func (e EnergySnapshot) String() string {
	return fmt.Sprintf("total %.2fJ (initial %.2fJ), kinetic %.2fJ, potential %.2fJ, dissipated %.2fJ (%.1f%%)",
		e.TotalCurrent(), e.TotalInitial(), e.KineticCurrent, e.PotentialCurrent, e.Dissipated, 100-e.Efficiency())
}
