package smc

import (
	"math"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

// STAGainSpec is the gain vector contract for [STASMC]:
// [K1, K2, lambda1, lambda2, k1, k2]. The algorithmic gain condition
// (K1 > 2*sqrt(2*dbar/beta), K2 > dbar/beta) is checked separately by
// NewSTASMC against the controller's declared disturbance bound, since
// it depends on configuration the bare gain vector does not carry.
var STAGainSpec = GainSpec{
	Names: []string{"K1", "K2", "lambda1", "lambda2", "k1", "k2"},
	Lower: []float64{0.01, 0.01, 0.1, 0.1, 0.1, 0.1},
	Upper: []float64{200, 200, 100, 100, 100, 100},
	Validate: func(g []float64) (bool, string) {
		if g[0] <= 0 {
			return false, "K1 must be > 0"
		}
		if g[1] <= 0 {
			return false, "K2 must be > 0"
		}
		return allPositive(g[2:], "lambda1", "lambda2", "k1", "k2")
	},
}

// STAOptions holds the non-gain configuration of an STASMC.
type STAOptions struct {
	Epsilon         float64
	Switching       SwitchingMethod
	UMax            float64
	ZMax            float64 // integrator clamp
	UseEquivalent   bool
	BetaMin         float64
	DisturbanceBound float64 // dbar, used only to validate K1/K2 at construction
	BetaNominal     float64 // nominal beta used for the same check
	NSat            int
}

func DefaultSTAOptions() STAOptions {
	return STAOptions{
		Epsilon:          0.02,
		Switching:        SwitchTanh,
		UMax:             150,
		ZMax:             100,
		UseEquivalent:    true,
		BetaMin:          DefaultBetaMin,
		DisturbanceBound: 5.0,
		BetaNominal:      1.0,
		NSat:             10,
	}
}

// STASMC is the super-twisting algorithm:
//
//	u = u_eq(x) - K1*sqrt(|sigma|)*phi(sigma/epsilon) + z
//	z <- z - K2*phi(sigma/epsilon)*dt, clipped to |z| <= ZMax
//
// The integrator is always updated explicitly (no semi-implicit form,
// per §9's redesign note).
type STASMC struct {
	model   dynamics.Model
	gains   []float64
	opts    STAOptions
	surface SlidingSurface
	equiv   *EquivalentControl

	z         float64
	lastSigma float64
	sat       saturationTracker
}

// NewSTASMC validates gains against STAGainSpec, then validates the
// algorithmic gain conditions against opts' declared disturbance bound.
func NewSTASMC(model dynamics.Model, gains []float64, opts STAOptions) (*STASMC, error) {
	if ok, reason := STAGainSpec.CheckAll(gains); !ok {
		return nil, NewInvalidGainsError("sta", reason)
	}
	def := DefaultSTAOptions()
	if opts.Epsilon <= 0 {
		opts.Epsilon = def.Epsilon
	}
	if opts.UMax <= 0 {
		opts.UMax = def.UMax
	}
	if opts.ZMax <= 0 {
		opts.ZMax = def.ZMax
	}
	if opts.NSat <= 0 {
		opts.NSat = def.NSat
	}
	if opts.Switching == "" {
		opts.Switching = SwitchTanh
	}
	if opts.DisturbanceBound <= 0 {
		opts.DisturbanceBound = def.DisturbanceBound
	}
	if opts.BetaNominal <= 0 {
		opts.BetaNominal = def.BetaNominal
	}

	K1, K2 := gains[0], gains[1]
	dbar, beta := opts.DisturbanceBound, opts.BetaNominal
	if K1 <= 2*math.Sqrt(2*dbar/beta) {
		return nil, NewInvalidGainsError("sta", "K1 must exceed 2*sqrt(2*dbar/beta)")
	}
	if K2 <= dbar/beta {
		return nil, NewInvalidGainsError("sta", "K2 must exceed dbar/beta")
	}

	s := &STASMC{
		model: model,
		gains: append([]float64(nil), gains...),
		opts:  opts,
		surface: SlidingSurface{
			Lambda1: gains[2], Lambda2: gains[3],
			K1: gains[4], K2: gains[5],
		},
		sat: newSaturationTracker(opts.NSat),
	}
	if opts.UseEquivalent {
		s.equiv = NewEquivalentControl(model, opts.BetaMin)
	}
	return s, nil
}

func (s *STASMC) ComputeControl(x dynamics.State, dt float64) (dynamics.Control, Telemetry) {
	if !x.IsValid() {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	sigma := s.surface.Compute(x)
	if !isFiniteScalar(sigma) {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	s.lastSigma = sigma

	phi := Switch(s.opts.Switching, sigma, s.opts.Epsilon)

	var uEq float64
	equivUsed := false
	if s.equiv != nil {
		L := [3]float64{0, s.surface.K1, s.surface.K2}
		v, _, ok := s.equiv.Compute(x, L)
		if ok {
			uEq = v
			equivUsed = true
		}
	}

	K1, K2 := s.gains[0], s.gains[1]
	u := uEq - K1*math.Sqrt(math.Abs(sigma))*phi + s.z
	uc := clipControl(u, s.opts.UMax)

	s.z -= K2 * phi * dt
	s.z = clip(s.z, -s.opts.ZMax, s.opts.ZMax)

	state := s.sat.observe(float64(uc), s.opts.UMax)

	return uc, Telemetry{
		Sigma: sigma, State: state, Valid: true, EquivalentUsed: equivUsed,
		AdaptiveGains: map[string]float64{"z": s.z},
	}
}

func (s *STASMC) Reset() {
	s.z = 0
	s.lastSigma = 0
	s.sat.reset()
}

func (s *STASMC) GainSpec() GainSpec { return STAGainSpec }

func (s *STASMC) GetParams() map[string]float64 {
	return map[string]float64{
		"K1": s.gains[0], "K2": s.gains[1],
		"lambda1": s.surface.Lambda1, "lambda2": s.surface.Lambda2,
		"k1": s.surface.K1, "k2": s.surface.K2,
		"epsilon": s.opts.Epsilon, "z": s.z,
	}
}

func (s *STASMC) SetParam(name string, value float64) error {
	switch name {
	case "K1":
		s.gains[0] = value
	case "K2":
		s.gains[1] = value
	case "lambda1":
		s.surface.Lambda1, s.gains[2] = value, value
	case "lambda2":
		s.surface.Lambda2, s.gains[3] = value, value
	case "k1":
		s.surface.K1, s.gains[4] = value, value
	case "k2":
		s.surface.K2, s.gains[5] = value, value
	case "epsilon":
		s.opts.Epsilon = value
	default:
		return NewUnknownParamError("sta", name)
	}
	return nil
}
