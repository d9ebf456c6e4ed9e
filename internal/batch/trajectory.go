package batch

import (
	"math"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

// Config controls a single trajectory's simulation horizon.
type Config struct {
	Duration float64 // seconds
	Dt       float64 // fixed RK4 step
}

// Validate enforces Duration/Dt > 0 and at least one step.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return &ConfigError{Field: "Duration", Reason: "must be > 0"}
	}
	if c.Dt <= 0 {
		return &ConfigError{Field: "Dt", Reason: "must be > 0"}
	}
	if c.Duration < c.Dt {
		return &ConfigError{Field: "Duration", Reason: "must be >= Dt"}
	}
	return nil
}

// Steps returns the number of fixed-size RK4 steps the trajectory takes.
func (c Config) Steps() int { return int(c.Duration / c.Dt) }

// Trajectory is the recorded output of one simulated run. Once a
// trajectory fails (singular plant, non-finite state, or an angle
// envelope violation) its State/Control/Sigma series are frozen: State
// repeats the last valid value, Control is held at zero, and Sigma
// records NaN, so every trajectory in a batch has the same length
// regardless of when (or whether) it failed.
type Trajectory struct {
	States   []dynamics.State
	Controls []dynamics.Control
	Sigma    []float64
	Times    []float64

	Failed     bool
	FailReason string
	TFail      float64 // NaN if the trajectory never failed
}

// NewTrajectory preallocates a trajectory's series for the given number
// of steps.
func NewTrajectory(steps int) Trajectory {
	return Trajectory{
		States:   make([]dynamics.State, 0, steps+1),
		Controls: make([]dynamics.Control, 0, steps),
		Sigma:    make([]float64, 0, steps),
		Times:    make([]float64, 0, steps+1),
		TFail:    math.NaN(),
	}
}
