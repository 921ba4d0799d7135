package metrics

import (
	"math"
	"testing"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

func testParams(t *testing.T) contact.Params {
	t.Helper()
	p, err := contact.NewParams(5.0, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e3, 1.0, 0.006)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	return p
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy(testParams(t))

	m.Observe(dynamics.Sample{V: 2.0, Omega: 1.0})
	want := 0.5*5.0*4.0 + 0.5*0.1*1.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("energy: got %g, want %g", m.Value(), want)
	}

	m.Observe(dynamics.Sample{}) // resting sample halves the mean
	if math.Abs(m.Value()-want/2) > 1e-12 {
		t.Errorf("mean energy: got %g, want %g", m.Value(), want/2)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset: %g", m.Value())
	}
}

func TestEnergyRise(t *testing.T) {
	m := NewEnergyRise(testParams(t))

	m.Observe(dynamics.Sample{V: 2.0})
	m.Observe(dynamics.Sample{V: 1.5})
	m.Observe(dynamics.Sample{V: 1.0})
	if m.Value() != 0 {
		t.Errorf("decaying run reported rise %g", m.Value())
	}

	m.Observe(dynamics.Sample{V: 1.2})
	rise := 0.5*5.0*1.2*1.2 - 0.5*5.0*1.0
	if math.Abs(m.Value()-rise) > 1e-12 {
		t.Errorf("rise: got %g, want %g", m.Value(), rise)
	}
}

func TestSlipFraction(t *testing.T) {
	slide := NewSlipFraction()
	roll := NewRollSlipFraction()

	samples := []dynamics.Sample{
		{SlideMode: contact.Slip, RollMode: contact.Stick},
		{SlideMode: contact.Slip, RollMode: contact.Slip},
		{SlideMode: contact.Stick, RollMode: contact.Stick},
		{SlideMode: contact.Stick, RollMode: contact.Stick},
	}
	for _, s := range samples {
		slide.Observe(s)
		roll.Observe(s)
	}

	if slide.Value() != 0.5 {
		t.Errorf("slide slip fraction: got %g, want 0.5", slide.Value())
	}
	if roll.Value() != 0.25 {
		t.Errorf("roll slip fraction: got %g, want 0.25", roll.Value())
	}
}

func TestPeakFriction(t *testing.T) {
	m := NewPeakFriction()

	m.Observe(dynamics.Sample{Friction: -9.8})
	m.Observe(dynamics.Sample{Friction: 4.0})
	if m.Value() != 9.8 {
		t.Errorf("peak: got %g, want 9.8", m.Value())
	}
}
