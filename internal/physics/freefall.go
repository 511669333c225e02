package physics

import (
	"fmt"

	"github.com/san-kum/freefall/internal/dynamo"
)

const (
	DefaultGravity = 9.81
	DefaultDrag    = 0.5
	DefaultMass    = 1.0
)

// Advance integrates one fixed step of semi-implicit Euler. Velocity is
// updated before it moves the body; the height is clamped to 0.
//
// A non-positive mass produces non-finite output and is not checked here.
func Advance(s BodyState, w WorldParameters, b BodyParameters, dt float64) BodyState {
	acceleration := w.Gravity - (w.DragCoefficient/b.Mass)*s.Velocity
	s.Velocity = s.Velocity + acceleration*dt
	s.Height = s.Height - s.Velocity*dt
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

// FreeFall is the live parameter set for a falling body. Host loops pass
// it by pointer so edits between ticks take effect without a restart.
type FreeFall struct {
	World WorldParameters
	Body  BodyParameters
}

func NewFreeFall(w WorldParameters, b BodyParameters) *FreeFall {
	return &FreeFall{World: w, Body: b}
}

func NewDefaultFreeFall() *FreeFall {
	return NewFreeFall(
		WorldParameters{Gravity: DefaultGravity, DragCoefficient: DefaultDrag},
		BodyParameters{Mass: DefaultMass},
	)
}

// Advance steps s with the handle's current parameters.
func (f *FreeFall) Advance(s BodyState, dt float64) BodyState {
	return Advance(s, f.World, f.Body, dt)
}

// Clone returns an independent copy for use by another body.
func (f *FreeFall) Clone() *FreeFall {
	c := *f
	return &c
}

func (f *FreeFall) Acceleration(velocity float64) float64 {
	return f.World.Gravity - (f.World.DragCoefficient/f.Body.Mass)*velocity
}

func (f *FreeFall) StateDim() int {
	return 2
}

// Derive returns d/dt of [height, velocity].
func (f *FreeFall) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-x[1], f.Acceleration(x[1])}
}

// Energy is the mechanical energy of [height, velocity] with the floor as
// the potential reference.
func (f *FreeFall) Energy(x dynamo.State) float64 {
	v := x[1]
	ke := 0.5 * f.Body.Mass * v * v
	pe := f.Body.Mass * f.World.Gravity * x[0]
	return ke + pe
}

func (f *FreeFall) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": f.World.Gravity,
		"drag":    f.World.DragCoefficient,
		"mass":    f.Body.Mass,
	}
}

func (f *FreeFall) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		f.World.Gravity = value
	case "drag":
		f.World.DragCoefficient = value
	case "mass":
		f.Body.Mass = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
