package smc

import (
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

// AdaptiveGainSpec is the gain vector contract for [AdaptiveSMC]:
// [lambda1, lambda2, k1, k2, alpha].
var AdaptiveGainSpec = GainSpec{
	Names: []string{"lambda1", "lambda2", "k1", "k2", "alpha"},
	Lower: []float64{0.1, 0.1, 0.1, 0.1, 0},
	Upper: []float64{100, 100, 100, 100, 50},
	Validate: func(g []float64) (bool, string) {
		if ok, reason := allPositive(g, "lambda1", "lambda2", "k1", "k2"); !ok {
			return false, reason
		}
		if g[4] < 0 {
			return false, "alpha must be >= 0"
		}
		return true, ""
	},
}

// AdaptiveOptions holds the non-gain configuration of an AdaptiveSMC,
// i.e. the switching-gain adaptation law's parameters.
type AdaptiveOptions struct {
	Epsilon       float64
	Switching     SwitchingMethod
	UMax          float64
	UseEquivalent bool
	BetaMin       float64
	NSat          int

	Gamma     float64 // adaptation rate outside the dead zone
	LeakRate  float64 // leak toward K0 (inside and outside the dead zone)
	DeadZone  float64 // delta: |sigma| <= DeadZone suppresses growth
	K0        float64 // initial/leak-target gain
	KMin      float64
	KMax      float64
	RateLimit float64 // Gamma_max: |Kdot| <= RateLimit
}

func DefaultAdaptiveOptions() AdaptiveOptions {
	return AdaptiveOptions{
		Epsilon: 0.02, Switching: SwitchTanh, UMax: 150,
		UseEquivalent: true, BetaMin: DefaultBetaMin, NSat: 10,
		Gamma: 2.0, LeakRate: 0.1, DeadZone: 0.05,
		K0: 0.5, KMin: 0.1, KMax: 20, RateLimit: 50,
	}
}

// AdaptiveSMC evolves its switching gain K(t) outside a dead zone:
//
//	Kdot = gamma*|sigma| - leak*(K-K0),           |sigma| > delta
//	Kdot = -leak*(K-K0),                          |sigma| <= delta
//
// rate-limited to |Kdot| <= RateLimit and clipped to [KMin, KMax]. The
// control law is u = u_eq(x) - K*phi(sigma/epsilon) - alpha*sigma.
type AdaptiveSMC struct {
	model   dynamics.Model
	gains   []float64
	opts    AdaptiveOptions
	surface SlidingSurface
	equiv   *EquivalentControl

	k         float64
	lastSigma float64
	sat       saturationTracker
}

// NewAdaptiveSMC validates gains against AdaptiveGainSpec and builds an
// AdaptiveSMC, seeding K at opts.K0.
func NewAdaptiveSMC(model dynamics.Model, gains []float64, opts AdaptiveOptions) (*AdaptiveSMC, error) {
	if ok, reason := AdaptiveGainSpec.CheckAll(gains); !ok {
		return nil, NewInvalidGainsError("adaptive", reason)
	}
	def := DefaultAdaptiveOptions()
	if opts.Epsilon <= 0 {
		opts.Epsilon = def.Epsilon
	}
	if opts.UMax <= 0 {
		opts.UMax = def.UMax
	}
	if opts.NSat <= 0 {
		opts.NSat = def.NSat
	}
	if opts.Switching == "" {
		opts.Switching = SwitchTanh
	}
	if opts.Gamma <= 0 {
		opts.Gamma = def.Gamma
	}
	if opts.DeadZone < 0 {
		opts.DeadZone = def.DeadZone
	}
	if opts.KMax <= 0 {
		opts.KMax = def.KMax
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = def.RateLimit
	}
	if opts.K0 < opts.KMin || opts.K0 > opts.KMax {
		return nil, NewInvalidGainsError("adaptive", "K0 must lie within [KMin, KMax]")
	}

	a := &AdaptiveSMC{
		model: model,
		gains: append([]float64(nil), gains...),
		opts:  opts,
		surface: SlidingSurface{
			Lambda1: gains[0], Lambda2: gains[1],
			K1: gains[2], K2: gains[3],
		},
		k:   opts.K0,
		sat: newSaturationTracker(opts.NSat),
	}
	if opts.UseEquivalent {
		a.equiv = NewEquivalentControl(model, opts.BetaMin)
	}
	return a, nil
}

func (a *AdaptiveSMC) ComputeControl(x dynamics.State, dt float64) (dynamics.Control, Telemetry) {
	if !x.IsValid() {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	sigma := a.surface.Compute(x)
	if !isFiniteScalar(sigma) {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	a.lastSigma = sigma

	a.k = adaptiveLawStep(a.k, a.opts.K0, a.opts.Gamma, a.opts.LeakRate,
		a.opts.RateLimit, a.opts.KMin, a.opts.KMax, sigma, a.opts.DeadZone, dt)

	phi := Switch(a.opts.Switching, sigma, a.opts.Epsilon)

	var uEq float64
	equivUsed := false
	if a.equiv != nil {
		L := [3]float64{0, a.surface.K1, a.surface.K2}
		v, _, ok := a.equiv.Compute(x, L)
		if ok {
			uEq = v
			equivUsed = true
		}
	}

	alpha := a.gains[4]
	u := uEq - a.k*phi - alpha*sigma
	uc := clipControl(u, a.opts.UMax)
	state := a.sat.observe(float64(uc), a.opts.UMax)

	return uc, Telemetry{
		Sigma: sigma, State: state, Valid: true, EquivalentUsed: equivUsed,
		AdaptiveGains: map[string]float64{"K": a.k},
	}
}

func (a *AdaptiveSMC) Reset() {
	a.k = a.opts.K0
	a.lastSigma = 0
	a.sat.reset()
}

func (a *AdaptiveSMC) GainSpec() GainSpec { return AdaptiveGainSpec }

func (a *AdaptiveSMC) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda1": a.surface.Lambda1, "lambda2": a.surface.Lambda2,
		"k1": a.surface.K1, "k2": a.surface.K2,
		"alpha": a.gains[4], "K": a.k, "K0": a.opts.K0,
	}
}

func (a *AdaptiveSMC) SetParam(name string, value float64) error {
	switch name {
	case "lambda1":
		a.surface.Lambda1, a.gains[0] = value, value
	case "lambda2":
		a.surface.Lambda2, a.gains[1] = value, value
	case "k1":
		a.surface.K1, a.gains[2] = value, value
	case "k2":
		a.surface.K2, a.gains[3] = value, value
	case "alpha":
		a.gains[4] = value
	default:
		return NewUnknownParamError("adaptive", name)
	}
	return nil
}
