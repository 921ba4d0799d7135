// Package experiment wires a validated configuration into a ready-to-run
// simulation and names its components.
package experiment

import (
	"context"
	"fmt"

	"github.com/rollslip/rollslip/internal/config"
	"github.com/rollslip/rollslip/internal/drive"
	"github.com/rollslip/rollslip/internal/dynamics"
	"github.com/rollslip/rollslip/internal/integrators"
	"github.com/rollslip/rollslip/internal/metrics"
	"github.com/rollslip/rollslip/internal/sim"
)

// Experiment is one configured run.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

// New validates cfg and wires the simulator with the default metric
// set. Unknown integrator or drive names fail here, before the run.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	drv, err := drive.New(cfg.Drive.Type, cfg.DriveParams())
	if err != nil {
		return nil, err
	}

	s := sim.New(params, stepper, drv)
	s.AddMetric(metrics.NewKineticEnergy(params))
	s.AddMetric(metrics.NewEnergyRise(params))
	s.AddMetric(metrics.NewSlipFraction())
	s.AddMetric(metrics.NewRollSlipFraction())
	s.AddMetric(metrics.NewPeakFriction())

	return &Experiment{cfg: cfg, simulator: s}, nil
}

// Run executes the experiment across its fixed horizon.
func (e *Experiment) Run(ctx context.Context) (*dynamics.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return e.simulator.Run(ctx, e.cfg.InitState(), e.cfg.RunConfig())
}

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

// Config returns the configuration the experiment was built from.
func (e *Experiment) Config() *config.Config { return e.cfg }
