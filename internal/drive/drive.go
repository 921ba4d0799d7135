// Package drive provides external force/torque sources for the disk:
// the drive term of the tangential equation of motion and the axle
// torque of the rotational one. Friction is never part of a drive.
package drive

import (
	"fmt"

	"github.com/rollslip/rollslip/internal/dynamics"
)

// None applies no external force or torque. Runs using it dissipate
// kinetic energy monotonically.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Apply(b dynamics.BodyState, t float64) (float64, float64) {
	return 0, 0
}

// Constant applies a fixed tangential force and axle torque.
type Constant struct {
	Force  float64
	Torque float64
}

func NewConstant(force, torque float64) *Constant {
	return &Constant{Force: force, Torque: torque}
}

func (c *Constant) Apply(b dynamics.BodyState, t float64) (float64, float64) {
	return c.Force, c.Torque
}

// Ramp applies a force and torque growing linearly from zero, the usual
// loading protocol for probing the static friction threshold.
type Ramp struct {
	ForceRate  float64 // N/s
	TorqueRate float64 // N·m/s
}

func NewRamp(forceRate, torqueRate float64) *Ramp {
	return &Ramp{ForceRate: forceRate, TorqueRate: torqueRate}
}

func (r *Ramp) Apply(b dynamics.BodyState, t float64) (float64, float64) {
	return r.ForceRate * t, r.TorqueRate * t
}

// New returns the drive registered under name. params carries the
// drive-specific constants (force, torque, force_rate, torque_rate).
func New(name string, params map[string]float64) (dynamics.Drive, error) {
	switch name {
	case "", "none":
		return NewNone(), nil
	case "constant":
		return NewConstant(params["force"], params["torque"]), nil
	case "ramp":
		return NewRamp(params["force_rate"], params["torque_rate"]), nil
	default:
		return nil, fmt.Errorf("%w: %q", dynamics.ErrUnknownDrive, name)
	}
}
