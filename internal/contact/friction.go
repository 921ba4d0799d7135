package contact

import "math"

// Evaluate advances the contact state by one step and returns the
// friction reaction. dx and dtheta are the body's translational and
// rotational displacements over the previous step, omega its current
// angular velocity, dt the step size.
//
// Both channels are fed increments computed here, before either channel
// mutates state, so their updates stay decoupled.
func (p Params) Evaluate(st State, dx, dtheta, omega, dt float64) (State, Reaction) {
	// No-slip constraint violation over the step, in translational and
	// angular units. The two are the same violation at different scale.
	deltaS := dx - dtheta*p.Radius
	deltaTheta := dx/p.Radius - dtheta

	next := st
	var r Reaction

	var damped bool
	next.Slip, next.SlideMode, damped = channel(st.Slip, deltaS, st.SlideMode, p.SlackStaticT, p.SlackKineticT)
	r.ElasticForce = p.Ke * next.Slip
	if damped && dt > 0 {
		r.DampingForce = p.DampStick * deltaS / dt
	}
	r.Force = r.ElasticForce + r.DampingForce

	next.Excursion, next.RollMode, damped = channel(st.Excursion, deltaTheta, st.RollMode, p.SlackStaticR, p.SlackKineticR)
	r.ElasticTorque = p.Kr * next.Excursion
	if damped {
		r.DampingTorque = p.DampRoll * omega
	}
	r.Torque = r.ElasticTorque + r.DampingTorque

	return next, r
}

// channel applies the bilinear hysteresis update for one friction
// channel. It returns the new accumulated displacement, the new mode,
// and whether the viscous damping term is active for this step.
//
// Sticking: the displacement accumulates freely up to the static slack;
// crossing it rescales the displacement back onto the static boundary
// (sign preserved) and the channel starts slipping, with damping
// suppressed for the step. Slipping: the displacement is clamped at the
// kinetic slack; falling back inside it re-sticks the channel.
func channel(accum, delta float64, mode Mode, slackStatic, slackKinetic float64) (float64, Mode, bool) {
	tentative := accum + delta

	switch mode {
	case Stick:
		if ratio := math.Abs(tentative) / slackStatic; ratio > 1 {
			return tentative / ratio, Slip, false
		}
		return tentative, Stick, true
	default:
		if ratio := math.Abs(tentative) / slackKinetic; ratio > 1 {
			return math.Copysign(slackKinetic, tentative), Slip, false
		}
		return tentative, Stick, true
	}
}
