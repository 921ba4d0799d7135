package contact

import (
	"errors"
	"math"
	"testing"
)

func benchParams(t *testing.T) Params {
	t.Helper()
	p, err := NewParams(5.0, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e3, 1.0, 0.006)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	return p
}

func TestNewParamsDerived(t *testing.T) {
	p := benchParams(t)

	wantStatic := 0.25 * 5.0 * 9.8 / 1e5
	if math.Abs(p.SlackStaticT-wantStatic) > 1e-12 {
		t.Errorf("static slack: got %g, want %g", p.SlackStaticT, wantStatic)
	}

	wantKinetic := 0.2 * 5.0 * 9.8 / 1e5
	if math.Abs(p.SlackKineticT-wantKinetic) > 1e-12 {
		t.Errorf("kinetic slack: got %g, want %g", p.SlackKineticT, wantKinetic)
	}

	if math.Abs(p.SlackStaticR-wantStatic/0.2) > 1e-12 {
		t.Errorf("rotational static slack: got %g", p.SlackStaticR)
	}

	wantDamp := 2 * math.Sqrt(5.0*1e5)
	if math.Abs(p.DampStick-wantDamp) > 1e-9 {
		t.Errorf("stick damping: got %g, want %g", p.DampStick, wantDamp)
	}

	wantRoll := 0.006 * 2 * math.Sqrt(0.1*1e3)
	if math.Abs(p.DampRoll-wantRoll) > 1e-12 {
		t.Errorf("roll damping: got %g, want %g", p.DampRoll, wantRoll)
	}
}

func TestSlackOrdering(t *testing.T) {
	// mu_k <= mu_s implies kinetic slack <= static slack in both channels.
	cases := []struct {
		name       string
		muS, muK   float64
		mass, ke   float64
	}{
		{"benchmark", 0.25, 0.2, 5.0, 1e5},
		{"equal coefficients", 0.3, 0.3, 2.0, 5e4},
		{"frictionless kinetic", 0.5, 0.0, 1.0, 1e3},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParams(tt.mass, 0.1, 0.05, 9.81, tt.muS, tt.muK, tt.ke, 1e3, 0.5, 0.1)
			if err != nil {
				t.Fatalf("params: %v", err)
			}
			if p.SlackKineticT > p.SlackStaticT {
				t.Errorf("kinetic slack %g exceeds static %g", p.SlackKineticT, p.SlackStaticT)
			}
			if p.SlackKineticR > p.SlackStaticR {
				t.Errorf("rotational kinetic slack %g exceeds static %g", p.SlackKineticR, p.SlackStaticR)
			}
		})
	}
}

func TestNewParamsInvalid(t *testing.T) {
	tests := []struct {
		name                             string
		mass, radius, inertia, gravity   float64
		muS, muK, ke, kr, etaT, etaR     float64
	}{
		{"zero mass", 0, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e4, 1, 0.002},
		{"negative mass", -1, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e4, 1, 0.002},
		{"zero radius", 5, 0, 0.1, 9.8, 0.25, 0.2, 1e5, 1e4, 1, 0.002},
		{"zero inertia", 5, 0.2, 0, 9.8, 0.25, 0.2, 1e5, 1e4, 1, 0.002},
		{"zero gravity", 5, 0.2, 0.1, 0, 0.25, 0.2, 1e5, 1e4, 1, 0.002},
		{"zero tangential stiffness", 5, 0.2, 0.1, 9.8, 0.25, 0.2, 0, 1e4, 1, 0.002},
		{"zero rolling stiffness", 5, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 0, 1, 0.002},
		{"kinetic above static", 5, 0.2, 0.1, 9.8, 0.2, 0.25, 1e5, 1e4, 1, 0.002},
		{"negative kinetic friction", 5, 0.2, 0.1, 9.8, 0.25, -0.1, 1e5, 1e4, 1, 0.002},
		{"negative tangential damping", 5, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e4, -1, 0.002},
		{"negative rolling damping", 5, 0.2, 0.1, 9.8, 0.25, 0.2, 1e5, 1e4, 1, -0.002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.mass, tt.radius, tt.inertia, tt.gravity,
				tt.muS, tt.muK, tt.ke, tt.kr, tt.etaT, tt.etaR)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}
