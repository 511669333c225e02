package physics

import "github.com/san-kum/freefall/internal/dynamo"

// BodyState is the kinematic state of one falling body. It is owned by a
// single host loop and mutated every tick.
type BodyState struct {
	Height          float64
	Velocity        float64
	InitialHeight   float64
	InitialVelocity float64
}

func NewBodyState(h0, v0 float64) BodyState {
	return BodyState{
		Height:          h0,
		Velocity:        v0,
		InitialHeight:   h0,
		InitialVelocity: v0,
	}
}

// Reset restores the initial conditions.
func (s *BodyState) Reset() {
	s.Height = s.InitialHeight
	s.Velocity = s.InitialVelocity
}

// Grounded reports whether the body has reached the floor.
func (s BodyState) Grounded() bool {
	return s.Height <= 0
}

func (s BodyState) Vector() dynamo.State {
	return dynamo.State{s.Height, s.Velocity}
}

// WithVector returns a copy of s carrying height and velocity from x,
// clamped to the floor.
func (s BodyState) WithVector(x dynamo.State) BodyState {
	s.Height, s.Velocity = x[0], x[1]
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

type WorldParameters struct {
	Gravity         float64
	DragCoefficient float64
}

type BodyParameters struct {
	Mass float64
}
