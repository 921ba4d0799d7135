// Package sim drives the rolling-contact simulation: a strictly
// sequential, fixed-horizon recurrence coupling the friction law to the
// explicit integrator.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

// Simulator runs a single body against the contact law. It is not
// safe for concurrent use; Sweep builds one Simulator per run.
type Simulator struct {
	params    contact.Params
	stepper   dynamics.Stepper
	drive     dynamics.Drive
	metrics   []dynamics.Metric
	observers []dynamics.Observer
}

func New(params contact.Params, stepper dynamics.Stepper, drv dynamics.Drive) *Simulator {
	return &Simulator{
		params:  params,
		stepper: stepper,
		drive:   drv,
	}
}

func (s *Simulator) AddMetric(m dynamics.Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) AddObserver(o dynamics.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Params() contact.Params { return s.params }

// Run advances the body from init across the fixed horizon. Each step
// evaluates the friction law on the displacement increments of the
// previous step and only then updates the kinematics; the resulting
// staggered coupling makes the run a genuine first-order recurrence,
// so steps are never computed out of order or in parallel.
//
// The returned error is non-nil when a quantity goes non-finite
// (wrapping dynamics.ErrDiverged with the offending step) or when ctx
// is done; the partial result up to the failing step is returned
// alongside it.
func (s *Simulator) Run(ctx context.Context, init dynamics.BodyState, cfg dynamics.Config) (*dynamics.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// Round, don't truncate: Duration/Dt ratios like 0.3/0.1 land just
	// below the integer and truncation would drop the final step.
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	if cfg.MaxSteps > 0 && steps > cfg.MaxSteps {
		steps = cfg.MaxSteps
	}

	result := &dynamics.Result{
		Samples: make([]dynamics.Sample, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	body := init
	prev := init // zero increments on the first step
	cs := contact.State{}
	dt := cfg.Dt

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * dt

		// Increments over the previous step, taken before either
		// channel of the contact state mutates.
		dx := body.X - prev.X
		dtheta := body.Theta - prev.Theta

		var reaction contact.Reaction
		cs, reaction = s.params.Evaluate(cs, dx, dtheta, body.Omega, dt)

		driveForce, driveTorque := s.drive.Apply(body, t)
		load := dynamics.Load{
			Friction:    reaction.Force,
			Rolling:     reaction.Torque,
			Drive:       driveForce,
			DriveTorque: driveTorque,
		}

		prev = body
		body = s.stepper.Step(s.params, body, load, dt)

		sample := makeSample(t+dt, body, reaction, cs)
		if !sample.IsValid() {
			return result, &dynamics.StepError{
				Step:     i,
				Time:     t,
				Quantity: offendingQuantity(body, reaction),
				Wrapped:  dynamics.ErrDiverged,
			}
		}

		result.Samples = append(result.Samples, sample)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, o := range s.observers {
			o.OnStep(sample)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg dynamics.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamics.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamics.ErrInvalidConfig, cfg.Duration)
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must be non-negative, got %d", dynamics.ErrInvalidConfig, cfg.MaxSteps)
	}
	return nil
}

func makeSample(t float64, b dynamics.BodyState, r contact.Reaction, cs contact.State) dynamics.Sample {
	return dynamics.Sample{
		T: t,
		X: b.X, V: b.V, A: b.A,
		Theta: b.Theta, Omega: b.Omega, Alpha: b.Alpha,
		ElasticForce:  r.ElasticForce,
		DampingForce:  r.DampingForce,
		ElasticTorque: r.ElasticTorque,
		DampingTorque: r.DampingTorque,
		Friction:      r.Force,
		Rolling:       r.Torque,
		Slip:          cs.Slip,
		Excursion:     cs.Excursion,
		SlideMode:     cs.SlideMode,
		RollMode:      cs.RollMode,
	}
}

func offendingQuantity(b dynamics.BodyState, r contact.Reaction) string {
	if !b.IsValid() {
		return "body state"
	}
	return fmt.Sprintf("friction reaction (F=%g, T=%g)", r.Force, r.Torque)
}
