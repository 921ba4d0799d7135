// Package integrators provides the explicit time-integration schemes
// for the rolling-contact simulation, selected by name.
package integrators

import (
	"fmt"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

// SemiImplicitEuler is the symplectic Euler scheme: accelerations from
// the current load, then velocities, then positions from the *updated*
// velocities.
//
// The load carries the friction reaction computed from the previous
// step's displacement increments. That one-step lag is part of the
// numerical scheme; evaluating friction from the freshly updated
// kinematics within the same step would change it.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(p contact.Params, b dynamics.BodyState, load dynamics.Load, dt float64) dynamics.BodyState {
	// Gravity acts normal to the contact; only friction and the external
	// drive accelerate the body tangentially.
	a := (-load.Friction + load.Drive) / p.Mass
	alpha := (load.Friction*p.Radius - load.Rolling + load.DriveTorque) / p.Inertia

	next := dynamics.BodyState{A: a, Alpha: alpha}
	next.V = b.V + dt*a
	next.X = b.X + dt*next.V
	next.Omega = b.Omega + dt*alpha
	next.Theta = b.Theta + dt*next.Omega
	return next
}

// New returns the stepper registered under name. Only the explicit
// scheme exists; unknown names are errors, not silent fallbacks.
func New(name string) (dynamics.Stepper, error) {
	switch name {
	case "explicit":
		return NewSemiImplicitEuler(), nil
	default:
		return nil, fmt.Errorf("%w: %q", dynamics.ErrUnknownStepper, name)
	}
}
