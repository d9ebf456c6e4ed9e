package cost

// NormConstants are the fixed per-problem-instance normalizers N_e, N_u,
// N_udot, N_sigma from the cost integral, plus the instability-penalty
// magnitude P_inst. The source material leaves these unfixed across
// references; this package commits to one set and documents it here
// rather than deriving them from a dataset:
//
//   - Ne: chosen so a trajectory sitting at the +-0.1 rad / 0.1 m tracking
//     envelope for the whole horizon contributes an O(1) term.
//   - Nu: chosen relative to a mid-range actuator limit (UMax ~ 150 N),
//     so a controller riding near saturation the whole horizon also
//     contributes an O(1) term.
//   - NuDot: control-rate normalizer, chosen so a control rate of about
//     1.4e3 N/s (sqrt(NuDot)) held for the whole horizon contributes an
//     O(1) term. A bang-bang control flipping between +-150 N on every
//     step at dt=0.01 (rate 3e4 N/s) contributes about 450 per second of
//     horizon.
//   - NSigma: chosen so a sliding variable sitting at its switching-layer
//     half-width (epsilon=0.02) for the whole horizon contributes an O(1)
//     term.
//   - Pinst: large relative to every other term's typical O(1)-O(10)
//     range, so any instability dominates the cost regardless of how
//     well-behaved the trajectory was before it failed.
type NormConstants struct {
	Ne     float64
	Nu     float64
	NuDot  float64
	NSigma float64
	Pinst  float64
}

// DefaultNormConstants returns the fixed values this package commits to.
func DefaultNormConstants() NormConstants {
	return NormConstants{
		Ne:     0.03,
		Nu:     22500,
		NuDot:  2_000_000,
		NSigma: 0.0004,
		Pinst:  1000,
	}
}

// Weights are the cost integral's per-term weights w_e, w_u, w_udot,
// w_sigma, w_stab.
type Weights struct {
	Tracking     float64
	Control      float64
	ControlRate  float64
	Sigma        float64
	Stability    float64
}

// DefaultWeights returns a balanced weighting with tracking error
// dominant and the instability term free to dominate on its own once a
// trajectory fails.
func DefaultWeights() Weights {
	return Weights{
		Tracking: 1.0, Control: 0.3, ControlRate: 0.1, Sigma: 0.2, Stability: 1.0,
	}
}

// RobustConfig controls the perturbed-physics draws used by RobustCost.
type RobustConfig struct {
	Draws       int     // M
	Perturbation float64 // p: each physics parameter scaled by U[1-p, 1+p]
	MeanWeight  float64 // a
	MaxWeight   float64 // b
}

// DefaultRobustConfig returns the spec's default. With Draws=1 and
// Perturbation=0.05, RobustCost still evaluates one perturbed physics
// draw; set Perturbation=0 for a nominal-physics evaluation, or Draws=10
// for a robust PSO run.
func DefaultRobustConfig() RobustConfig {
	return RobustConfig{Draws: 1, Perturbation: 0.05, MeanWeight: 0.7, MaxWeight: 0.3}
}
