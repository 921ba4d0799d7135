package config

// Presets are the named scenarios shipped with the tool. Each is a
// complete, valid configuration.
var Presets = map[string]*Config{
	// The sliding-disk benchmark: immediate slip, spin-up to pure
	// rolling near t=0.41 s, then slow decay under rolling resistance.
	"benchmark": Default(),

	// Released just above the rolling state; the slide channel sticks
	// almost at once and only rolling resistance acts.
	"gentle": {
		Integrator: "explicit",
		Dt:         1e-4,
		Duration:   6.0,
		Body:       BodyConfig{Mass: 5.0, Radius: 0.2, Inertia: 0.1},
		Contact: ContactConfig{
			Gravity: 9.8, MuStatic: 0.25, MuKinetic: 0.2,
			TangentStiffness: 1e5, RollingStiffness: 1e3,
			TangentDamping: 1.0, RollingDamping: 0.006,
		},
		Init:  InitConfig{Velocity: 0.4, Spin: 1.9},
		Drive: DriveConfig{Type: "none"},
	},

	// Spinning in place: the disk is released with spin only and
	// crawls forward as friction converts spin into translation.
	"spinup": {
		Integrator: "explicit",
		Dt:         1e-4,
		Duration:   8.0,
		Body:       BodyConfig{Mass: 5.0, Radius: 0.2, Inertia: 0.1},
		Contact: ContactConfig{
			Gravity: 9.8, MuStatic: 0.25, MuKinetic: 0.2,
			TangentStiffness: 1e5, RollingStiffness: 1e3,
			TangentDamping: 1.0, RollingDamping: 0.006,
		},
		Init:  InitConfig{Velocity: 0.0, Spin: 10.0},
		Drive: DriveConfig{Type: "none"},
	},

	// Torque ramp on a resting disk: probes the static thresholds and
	// the stick-slip limit cycle under slow loading.
	"ramp": {
		Integrator: "explicit",
		Dt:         1e-4,
		Duration:   12.0,
		Body:       BodyConfig{Mass: 5.0, Radius: 0.2, Inertia: 0.1},
		Contact: ContactConfig{
			Gravity: 9.8, MuStatic: 0.25, MuKinetic: 0.2,
			TangentStiffness: 1e5, RollingStiffness: 1e3,
			TangentDamping: 0.1, RollingDamping: 0.006,
		},
		Init:  InitConfig{Velocity: 0.0, Spin: 0.0},
		Drive: DriveConfig{Type: "ramp", TorqueRate: 0.5},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
