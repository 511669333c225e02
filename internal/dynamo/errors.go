package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a world or ball preset name that does not exist.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownIntegrator indicates an integrator name with no registered constructor.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrRunNotFound indicates a stored run id with no metadata on disk.
	ErrRunNotFound = errors.New("dynamo: run not found")
)

// SimError wraps an error with simulation context.
type SimError struct {
	Step    int
	Time    float64
	Message string
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
