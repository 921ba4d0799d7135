// Package dynamics provides the core types for simulating a rigid disk
// on a frictional plane.
//
//   - [BodyState]: 1-D translational + 1-D rotational kinematics
//   - [Stepper]: explicit time-integration scheme
//   - [Drive]: external tangential force / axle torque source
//   - [Metric], [Observer]: per-step instrumentation hooks
//   - [Result]: recorded time series with a restartable sample sequence
//
// # Thread Safety
//
// A run owns its BodyState and contact state exclusively; no external
// mutation is permitted while the run is in progress. For parameter
// sweeps across independent runs, use sim.Sweep, which never shares
// state between runs.
package dynamics
