package smc

// Telemetry carries per-step diagnostic output from ComputeControl:
// the sliding variable, any adaptive gains, the controller's discrete
// state, and a validity flag that is false when the state or the sliding
// variable is non-finite. A singular inertia matrix does not clear Valid;
// it only suppresses equivalent control (EquivalentUsed is false).
type Telemetry struct {
	Sigma          float64
	AdaptiveGains  map[string]float64
	State          ControllerState
	Valid          bool
	EquivalentUsed bool
}

// ControllerState is the common state machine shared by every variant
// (spec §4.4.5). Only the hybrid variant ever reaches ResetFired.
type ControllerState int

const (
	StateNormal ControllerState = iota
	StateSaturated
	StateResetPending
	StateResetFired
	StateInvalid
)

func (s ControllerState) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateSaturated:
		return "SATURATED"
	case StateResetPending:
		return "RESET_PENDING"
	case StateResetFired:
		return "RESET_FIRED"
	case StateInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}
