package dynamics

import (
	"iter"
	"math"

	"github.com/rollslip/rollslip/internal/contact"
)

// BodyState is the full kinematic state of the disk: position, velocity
// and acceleration in the tangential direction plus their rotational
// counterparts about the contact axis. It is owned by the simulation
// loop and replaced once per step.
type BodyState struct {
	X     float64 // m
	V     float64 // m/s
	A     float64 // m/s²
	Theta float64 // rad
	Omega float64 // rad/s
	Alpha float64 // rad/s²
}

// IsValid reports whether every kinematic quantity is finite.
func (b BodyState) IsValid() bool {
	for _, v := range [...]float64{b.X, b.V, b.A, b.Theta, b.Omega, b.Alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// KineticEnergy is ½·m·v² + ½·I·ω².
func (b BodyState) KineticEnergy(p contact.Params) float64 {
	return 0.5*p.Mass*b.V*b.V + 0.5*p.Inertia*b.Omega*b.Omega
}

// Load is the net force and torque fed to a Stepper for one step: the
// friction reaction from the contact law plus any external drive.
type Load struct {
	Friction    float64 // tangential friction force, sign convention of the slip S
	Rolling     float64 // rolling resistance torque, opposing rotation
	Drive       float64 // external tangential force
	DriveTorque float64 // external axle torque
}

// Stepper advances the body by one step of size dt under the given
// load. The friction in the load was computed from the previous step's
// displacement increments; a Stepper must not re-evaluate it.
type Stepper interface {
	Step(p contact.Params, b BodyState, load Load, dt float64) BodyState
}

// Drive supplies the external force and axle torque at time t.
type Drive interface {
	Apply(b BodyState, t float64) (force, torque float64)
}

// Metric accumulates a scalar statistic over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s Sample)
}

// Config holds the run parameters of the simulation loop.
type Config struct {
	Dt       float64 // step size, s
	Duration float64 // fixed horizon Tend, s
	MaxSteps int     // optional cap; 0 means no cap beyond the horizon
}

// Sample is one row of the output time series: the kinematics after a
// step together with the friction reaction and contact state that
// produced it.
type Sample struct {
	T float64 `json:"t"`

	X     float64 `json:"x"`
	V     float64 `json:"v"`
	A     float64 `json:"a"`
	Theta float64 `json:"theta"`
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`

	ElasticForce  float64 `json:"elastic_force"`  // E_f
	DampingForce  float64 `json:"damping_force"`  // D_f
	ElasticTorque float64 `json:"elastic_torque"` // T_e
	DampingTorque float64 `json:"damping_torque"` // T_d
	Friction      float64 `json:"friction"`       // F_f
	Rolling       float64 `json:"rolling"`        // T_r

	Slip      float64      `json:"slip"`      // S
	Excursion float64      `json:"excursion"` // Θ
	SlideMode contact.Mode `json:"slide_mode"`
	RollMode  contact.Mode `json:"roll_mode"`
}

// IsValid reports whether every recorded quantity is finite.
func (s Sample) IsValid() bool {
	for _, v := range [...]float64{
		s.T, s.X, s.V, s.A, s.Theta, s.Omega, s.Alpha,
		s.ElasticForce, s.DampingForce, s.ElasticTorque, s.DampingTorque,
		s.Friction, s.Rolling, s.Slip, s.Excursion,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Result is the recorded outcome of one run.
type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}

// Series returns the time series as a lazy sequence. The sequence is
// finite and restarts from the first sample on every range; resuming
// from an arbitrary step is not supported.
func (r *Result) Series() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for _, s := range r.Samples {
			if !yield(s) {
				return
			}
		}
	}
}

// Final returns the last recorded sample, or the zero Sample for an
// empty result.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}
