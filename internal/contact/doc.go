// Package contact implements a hysteretic stick-slip contact law for a
// rigid disk rolling on a fixed plane.
//
// Two friction channels are tracked, each a two-state machine:
//
//   - tangential (sliding): accumulated relative displacement S behaves
//     like a spring while stuck, Coulomb-clamped while slipping
//   - rolling: the same bilinear law on the angular excursion Θ, the
//     violation of the no-slip rolling constraint
//
// While a channel sticks the reaction is elastic plus critically-damped
// viscous; while it slips the reaction is the clamped elastic term alone.
// The law is bilinear hysteresis: it reproduces stick-slip limit cycles
// without a velocity-sign Coulomb switch, so an explicit integrator can
// step it without chattering.
//
// [Params] is immutable for a run; [State] is mutated exactly once per
// step through [Params.Evaluate].
package contact
