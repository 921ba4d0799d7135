package sim

import (
	"context"
	"sync"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

// Variant is one run of a parameter sweep: its own immutable contact
// parameters and initial state.
type Variant struct {
	Label  string
	Params contact.Params
	Init   dynamics.BodyState
}

// Sweep runs independent variants concurrently. Each run stays a
// strictly sequential recurrence inside; only whole runs fan out, and
// no state is shared between them.
type Sweep struct {
	stepper  func() dynamics.Stepper
	drive    func() dynamics.Drive
	variants []Variant
}

func NewSweep(stepper func() dynamics.Stepper, drv func() dynamics.Drive, variants []Variant) *Sweep {
	return &Sweep{stepper: stepper, drive: drv, variants: variants}
}

// Run executes every variant and returns results in variant order.
// The first run error is returned after all runs finish.
func (s *Sweep) Run(ctx context.Context, cfg dynamics.Config) ([]*dynamics.Result, error) {
	results := make([]*dynamics.Result, len(s.variants))
	errs := make([]error, len(s.variants))

	var wg sync.WaitGroup
	for i, v := range s.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()
			runner := New(v.Params, s.stepper(), s.drive())
			results[idx], errs[idx] = runner.Run(ctx, v.Init, cfg)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
