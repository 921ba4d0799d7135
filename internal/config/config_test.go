package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Mass != 5.0 || p.Radius != 0.2 {
		t.Errorf("unexpected benchmark body: %+v", p)
	}
}

func TestPresetsAreValid(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("preset lookup failed")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset invalid: %v", err)
			}
		})
	}
}

func TestPresetRollingTorqueBelowSpinup(t *testing.T) {
	// The clamped rolling torque Kr·slack_k_r must stay below the
	// Coulomb spin-up torque mu_k·m·g·r. A scenario violating this can
	// never reach pure rolling: rolling resistance outpulls friction
	// spin-up and the disk winds up backwards without bound.
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			p, err := GetPreset(name).Params()
			if err != nil {
				t.Fatalf("params: %v", err)
			}
			clamp := p.Kr * p.SlackKineticR
			spinup := p.MuK * p.Mass * p.Gravity * p.Radius
			if clamp >= spinup {
				t.Errorf("rolling torque clamp %g N·m reaches spin-up torque %g N·m", clamp, spinup)
			}
		})
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestValidateRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing dt", func(c *Config) { c.Dt = 0 }},
		{"missing duration", func(c *Config) { c.Duration = 0 }},
		{"missing integrator", func(c *Config) { c.Integrator = "" }},
		{"missing mass", func(c *Config) { c.Body.Mass = 0 }},
		{"missing radius", func(c *Config) { c.Body.Radius = 0 }},
		{"missing inertia", func(c *Config) { c.Body.Inertia = 0 }},
		{"missing gravity", func(c *Config) { c.Contact.Gravity = 0 }},
		{"missing tangent stiffness", func(c *Config) { c.Contact.TangentStiffness = 0 }},
		{"missing rolling stiffness", func(c *Config) { c.Contact.RollingStiffness = 0 }},
		{"kinetic above static", func(c *Config) { c.Contact.MuKinetic = c.Contact.MuStatic + 0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, dynamics.ErrInvalidConfig) && !errors.Is(err, contact.ErrInvalidParams) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	want := GetPreset("spinup")
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip changed config:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadRejectsIncompleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	partial := "dt: 0.0001\nduration: 1.0\nintegrator: explicit\nbody:\n  mass: 5.0\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected incomplete configuration to fail validation")
	}
}

func TestInitStateAndRunConfig(t *testing.T) {
	cfg := Default()

	init := cfg.InitState()
	if init.V != 2.0 || init.Omega != 0.0 {
		t.Errorf("init state: %+v", init)
	}

	run := cfg.RunConfig()
	if run.Dt != 1e-4 || run.Duration != 8.5 {
		t.Errorf("run config: %+v", run)
	}
}
