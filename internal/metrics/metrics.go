// Package metrics provides per-run scalar statistics computed from the
// sample stream.
package metrics

import (
	"math"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

// KineticEnergy reports the mean kinetic energy over the run.
type KineticEnergy struct {
	mass    float64
	inertia float64
	sum     float64
	samples int
}

func NewKineticEnergy(p contact.Params) *KineticEnergy {
	return &KineticEnergy{mass: p.Mass, inertia: p.Inertia}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s dynamics.Sample) {
	k.sum += 0.5*k.mass*s.V*s.V + 0.5*k.inertia*s.Omega*s.Omega
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.sum = 0
	k.samples = 0
}

// EnergyRise reports the largest per-step increase in kinetic energy.
// Friction and rolling resistance only dissipate, so anything beyond
// integration noise flags a broken configuration.
type EnergyRise struct {
	mass    float64
	inertia float64
	prev    float64
	maxRise float64
	samples int
}

func NewEnergyRise(p contact.Params) *EnergyRise {
	return &EnergyRise{mass: p.Mass, inertia: p.Inertia}
}

func (e *EnergyRise) Name() string { return "energy_rise" }

func (e *EnergyRise) Observe(s dynamics.Sample) {
	ke := 0.5*e.mass*s.V*s.V + 0.5*e.inertia*s.Omega*s.Omega
	if e.samples > 0 {
		e.maxRise = math.Max(e.maxRise, ke-e.prev)
	}
	e.prev = ke
	e.samples++
}

func (e *EnergyRise) Value() float64 { return e.maxRise }

func (e *EnergyRise) Reset() {
	e.prev = 0
	e.maxRise = 0
	e.samples = 0
}

// SlipFraction reports the fraction of steps a channel spent slipping.
type SlipFraction struct {
	rolling  bool
	slipping int
	samples  int
}

// NewSlipFraction observes the sliding channel; NewRollSlipFraction the
// rolling channel.
func NewSlipFraction() *SlipFraction { return &SlipFraction{} }

func NewRollSlipFraction() *SlipFraction { return &SlipFraction{rolling: true} }

func (f *SlipFraction) Name() string {
	if f.rolling {
		return "roll_slip_fraction"
	}
	return "slip_fraction"
}

func (f *SlipFraction) Observe(s dynamics.Sample) {
	f.samples++
	mode := s.SlideMode
	if f.rolling {
		mode = s.RollMode
	}
	if mode == contact.Slip {
		f.slipping++
	}
}

func (f *SlipFraction) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.slipping) / float64(f.samples)
}

func (f *SlipFraction) Reset() {
	f.slipping = 0
	f.samples = 0
}

// PeakFriction reports the largest friction force magnitude seen.
type PeakFriction struct {
	peak float64
}

func NewPeakFriction() *PeakFriction { return &PeakFriction{} }

func (p *PeakFriction) Name() string { return "peak_friction" }

func (p *PeakFriction) Observe(s dynamics.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.Friction))
}

func (p *PeakFriction) Value() float64 { return p.peak }

func (p *PeakFriction) Reset() { p.peak = 0 }
