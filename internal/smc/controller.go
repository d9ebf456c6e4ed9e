package smc

import "github.com/san-kum/dipsmc-pso/internal/dynamics"

// Controller is the common contract every SMC variant satisfies. Each
// variant owns its internal state exclusively (no global mutable
// state); Reset returns it to its initial configuration and is
// idempotent.
type Controller interface {
	// ComputeControl advances the controller's internal state by one
	// step of size dt and returns the clipped control and telemetry. dt
	// is needed by variants with an explicit integrator (STA, hybrid);
	// stateless variants (classical) ignore it.
	ComputeControl(x dynamics.State, dt float64) (dynamics.Control, Telemetry)
	Reset()
	GainSpec() GainSpec
	// Configurable, mirroring the teacher's live-tuning interface.
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// saturationTracker counts consecutive steps at the actuator limit and
// reports the common NORMAL/SATURATED transition (spec §4.4.5).
type saturationTracker struct {
	consecutive int
	threshold   int
}

func newSaturationTracker(nSat int) saturationTracker {
	return saturationTracker{threshold: nSat}
}

func (t *saturationTracker) observe(u, uMax float64) ControllerState {
	if absf(u) >= uMax {
		t.consecutive++
	} else {
		t.consecutive = 0
	}
	if t.consecutive >= t.threshold {
		return StateSaturated
	}
	return StateNormal
}

func (t *saturationTracker) reset() {
	t.consecutive = 0
}

func clipControl(u, uMax float64) dynamics.Control {
	return dynamics.Control(clip(u, -uMax, uMax))
}
