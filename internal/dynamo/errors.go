package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state holding NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the model does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrRunNotFound indicates a run ID with no stored data.
	ErrRunNotFound = errors.New("dynamo: run not found")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
