package dynamics

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidConfig indicates a run configuration that fails validation.
	ErrInvalidConfig = errors.New("dynamics: invalid configuration")

	// ErrDiverged indicates a non-finite quantity produced during the loop.
	ErrDiverged = errors.New("dynamics: numerical divergence (NaN or Inf)")

	// ErrUnknownStepper indicates an integration scheme name with no
	// registered implementation.
	ErrUnknownStepper = errors.New("dynamics: unknown integration scheme")

	// ErrUnknownDrive indicates an external drive name with no registered
	// implementation.
	ErrUnknownDrive = errors.New("dynamics: unknown drive")
)

// StepError wraps an error with the step at which it occurred and the
// quantity that triggered it. The run halts at the offending step; the
// partial result up to that step is still returned to the caller.
type StepError struct {
	Step     int
	Time     float64
	Quantity string
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %s: %v", e.Step, e.Time, e.Quantity, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
