// Package config loads, saves and validates run configurations.
//
// A configuration must be complete: zero-valued physical fields read
// from a file fail validation rather than being silently defaulted.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

type Config struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`

	Body    BodyConfig    `yaml:"body"`
	Contact ContactConfig `yaml:"contact"`
	Init    InitConfig    `yaml:"init"`
	Drive   DriveConfig   `yaml:"drive"`
}

type BodyConfig struct {
	Mass    float64 `yaml:"mass"`
	Radius  float64 `yaml:"radius"`
	Inertia float64 `yaml:"inertia"`
}

type ContactConfig struct {
	Gravity          float64 `yaml:"gravity"`
	MuStatic         float64 `yaml:"mu_static"`
	MuKinetic        float64 `yaml:"mu_kinetic"`
	TangentStiffness float64 `yaml:"tangent_stiffness"`
	RollingStiffness float64 `yaml:"rolling_stiffness"`
	TangentDamping   float64 `yaml:"tangent_damping"`
	RollingDamping   float64 `yaml:"rolling_damping"`
}

type InitConfig struct {
	Velocity float64 `yaml:"velocity"`
	Spin     float64 `yaml:"spin"`
}

type DriveConfig struct {
	Type       string  `yaml:"type"`
	Force      float64 `yaml:"force"`
	Torque     float64 `yaml:"torque"`
	ForceRate  float64 `yaml:"force_rate"`
	TorqueRate float64 `yaml:"torque_rate"`
}

// Default returns the benchmark scenario configuration. It seeds CLI
// flag defaults; file loading never falls back to it.
func Default() *Config {
	return &Config{
		Integrator: "explicit",
		Dt:         1e-4,
		Duration:   8.5,
		Body:       BodyConfig{Mass: 5.0, Radius: 0.2, Inertia: 0.1},
		Contact: ContactConfig{
			Gravity:          9.8,
			MuStatic:         0.25,
			MuKinetic:        0.2,
			TangentStiffness: 1e5,
			RollingStiffness: 1e3,
			TangentDamping:   1.0,
			RollingDamping:   0.006,
		},
		Init:  InitConfig{Velocity: 2.0, Spin: 0.0},
		Drive: DriveConfig{Type: "none"},
	}
}

// Load reads a configuration file. Every physical field must be
// present; Validate rejects the zero values yaml leaves behind for
// missing keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamics.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run parameters and the physical invariants. The
// physical checks are delegated to contact.NewParams so the CLI and the
// core reject exactly the same configurations.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamics.ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamics.ErrInvalidConfig, c.Duration)
	}
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator not set", dynamics.ErrInvalidConfig)
	}
	_, err := c.Params()
	return err
}

// Params builds the immutable contact parameters from the configuration.
func (c *Config) Params() (contact.Params, error) {
	return contact.NewParams(
		c.Body.Mass, c.Body.Radius, c.Body.Inertia,
		c.Contact.Gravity, c.Contact.MuStatic, c.Contact.MuKinetic,
		c.Contact.TangentStiffness, c.Contact.RollingStiffness,
		c.Contact.TangentDamping, c.Contact.RollingDamping,
	)
}

// InitState returns the initial kinematics of the run.
func (c *Config) InitState() dynamics.BodyState {
	return dynamics.BodyState{V: c.Init.Velocity, Omega: c.Init.Spin}
}

// RunConfig returns the loop parameters.
func (c *Config) RunConfig() dynamics.Config {
	return dynamics.Config{Dt: c.Dt, Duration: c.Duration}
}

// DriveParams returns the drive constants keyed the way drive.New
// expects them.
func (c *Config) DriveParams() map[string]float64 {
	return map[string]float64{
		"force":       c.Drive.Force,
		"torque":      c.Drive.Torque,
		"force_rate":  c.Drive.ForceRate,
		"torque_rate": c.Drive.TorqueRate,
	}
}
