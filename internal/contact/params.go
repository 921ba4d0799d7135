package contact

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams indicates a physical parameter outside its valid range.
var ErrInvalidParams = errors.New("contact: invalid parameters")

// Params holds the physical inputs of the contact law together with the
// constants derived from them. Build with NewParams; a Params value is
// immutable for the lifetime of a run.
type Params struct {
	Mass    float64 // kg
	Radius  float64 // m, rolling contact radius
	Inertia float64 // kg·m², about the contact axis
	Gravity float64 // m/s², normal load per unit mass
	MuS     float64 // static friction coefficient
	MuK     float64 // kinetic friction coefficient, MuK <= MuS
	Ke      float64 // tangential contact stiffness, N/m
	Kr      float64 // rolling contact stiffness, N·m/rad
	EtaT    float64 // tangential damping ratio while stuck
	EtaR    float64 // rolling damping ratio

	// Derived, computed once by NewParams.
	SlackStaticT  float64 // mu_s·m·g / Ke
	SlackKineticT float64 // mu_k·m·g / Ke
	SlackStaticR  float64 // SlackStaticT / Radius
	SlackKineticR float64 // SlackKineticT / Radius
	DampStick     float64 // eta_t · 2·sqrt(m·Ke)
	DampRoll      float64 // eta_r · 2·sqrt(I·Kr)
}

// NewParams validates the physical inputs and computes the derived
// constants. It returns an error wrapping ErrInvalidParams when any
// invariant is violated; the run must not start in that case.
func NewParams(mass, radius, inertia, gravity, muS, muK, ke, kr, etaT, etaR float64) (Params, error) {
	checks := []struct {
		ok  bool
		msg string
	}{
		{mass > 0, fmt.Sprintf("mass must be positive, got %g", mass)},
		{radius > 0, fmt.Sprintf("radius must be positive, got %g", radius)},
		{inertia > 0, fmt.Sprintf("inertia must be positive, got %g", inertia)},
		{gravity > 0, fmt.Sprintf("gravity must be positive, got %g", gravity)},
		{ke > 0, fmt.Sprintf("tangential stiffness must be positive, got %g", ke)},
		{kr > 0, fmt.Sprintf("rolling stiffness must be positive, got %g", kr)},
		{muK >= 0, fmt.Sprintf("kinetic friction must be non-negative, got %g", muK)},
		{muK <= muS, fmt.Sprintf("kinetic friction %g exceeds static %g", muK, muS)},
		{etaT >= 0, fmt.Sprintf("tangential damping ratio must be non-negative, got %g", etaT)},
		{etaR >= 0, fmt.Sprintf("rolling damping ratio must be non-negative, got %g", etaR)},
	}
	for _, c := range checks {
		if !c.ok {
			return Params{}, fmt.Errorf("%w: %s", ErrInvalidParams, c.msg)
		}
	}

	p := Params{
		Mass: mass, Radius: radius, Inertia: inertia, Gravity: gravity,
		MuS: muS, MuK: muK, Ke: ke, Kr: kr, EtaT: etaT, EtaR: etaR,
	}
	limit := mass * gravity
	p.SlackStaticT = muS * limit / ke
	p.SlackKineticT = muK * limit / ke
	p.SlackStaticR = p.SlackStaticT / radius
	p.SlackKineticR = p.SlackKineticT / radius
	p.DampStick = etaT * 2 * math.Sqrt(mass*ke)
	p.DampRoll = etaR * 2 * math.Sqrt(inertia*kr)
	return p, nil
}
