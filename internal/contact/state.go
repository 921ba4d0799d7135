package contact

import "fmt"

// Mode is the regime of one friction channel.
type Mode int

const (
	// Stick accumulates relative displacement elastically.
	Stick Mode = iota
	// Slip holds the displacement at the Coulomb limit.
	Slip
)

func (m Mode) String() string {
	switch m {
	case Stick:
		return "stick"
	case Slip:
		return "slip"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"stick"`:
		*m = Stick
	case `"slip"`:
		*m = Slip
	default:
		return fmt.Errorf("contact: unknown mode %s", data)
	}
	return nil
}

// State is the mutable per-step state of the contact: the accumulated
// relative displacements and the current regime of each channel. The
// zero value is the correct initial state.
//
// After every Evaluate, |Slip| is at most the slack of the slide mode
// and |Excursion| at most the slack of the roll mode; overshoot is
// resolved by rescaling inside Evaluate, never left behind.
type State struct {
	Slip      float64 // S, accumulated tangential relative displacement, m
	Excursion float64 // Θ, accumulated rolling excursion, rad
	SlideMode Mode
	RollMode  Mode
}

// Reaction is the force/torque output of one friction evaluation.
// It is derived data, recomputed each step and not retained by the law.
type Reaction struct {
	ElasticForce  float64 // E_f = Ke·S
	DampingForce  float64 // D_f, zero while slipping
	ElasticTorque float64 // T_e = Kr·Θ
	DampingTorque float64 // T_d = Cr·ω, zero while the rolling channel slips
	Force         float64 // F_f = E_f + D_f, sign convention of S
	Torque        float64 // T_r = T_e + T_d, opposing rotation
}
