package smc

import (
	"math"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

// HybridGainSpec is the gain vector contract for [HybridSMC]:
// [lambda1, lambda2, lambdaC, kC, kInit1, kInit2, kd]. kInit1/kInit2 seed
// (and are the leak target for) the two adaptive gains: the super-twisting
// proportional gain k1 and the integral gain k2. There is no scenario in
// the source material pinning this ordering down the way there is for the
// other three variants, so it was chosen to read front-to-back as "surface
// shape, then adaptive-law seeds, then the linear sigma term" -- documented
// as an explicit design decision, not inferred from an example.
var HybridGainSpec = GainSpec{
	Names: []string{"lambda1", "lambda2", "lambdaC", "kC", "kInit1", "kInit2", "kd"},
	Lower: []float64{0.1, 0.1, 0, 0, 0.01, 0.01, 0},
	Upper: []float64{100, 100, 50, 50, 100, 100, 50},
	Validate: func(g []float64) (bool, string) {
		if ok, reason := allPositive(g, "lambda1", "lambda2"); !ok {
			return false, reason
		}
		if g[4] <= 0 {
			return false, "kInit1 must be > 0"
		}
		if g[5] <= 0 {
			return false, "kInit2 must be > 0"
		}
		if g[2] < 0 || g[3] < 0 {
			return false, "lambdaC and kC must be >= 0"
		}
		if g[6] < 0 {
			return false, "kd must be >= 0"
		}
		return true, ""
	},
}

// HybridOptions holds the non-gain configuration of a HybridSMC.
type HybridOptions struct {
	Epsilon       float64
	Switching     SwitchingMethod
	UMax          float64
	UseEquivalent bool
	BetaMin       float64
	NSat          int
	Relative      bool // surface measures theta2 relative to theta1

	// Adaptive-gain law, shared dead zone, independent rates/leaks/bounds.
	Gamma1, Gamma2         float64
	Leak1, Leak2           float64
	DeadZone               float64
	K1Min, K1Max           float64
	K2Min, K2Max           float64
	RateLimit              float64
	UIntMax                float64 // integral-term clamp, independent of UMax

	// PD(x, xdot): cart-centering term subtracted from the control law.
	PDKp, PDKd float64

	// Emergency-reset hysteresis (spec §9): NHyst consecutive saturated
	// steps must elapse before a reset fires, and resets are throttled to
	// at most one per TReset seconds of simulated time.
	NHyst   int
	TReset  float64
}

func DefaultHybridOptions() HybridOptions {
	return HybridOptions{
		Epsilon: 0.02, Switching: SwitchTanh, UMax: 150,
		UseEquivalent: true, BetaMin: DefaultBetaMin, NSat: 10,
		Gamma1: 1.5, Gamma2: 1.0, Leak1: 0.1, Leak2: 0.1,
		DeadZone: 0.05, K1Min: 0.1, K1Max: 50, K2Min: 0.1, K2Max: 50,
		RateLimit: 50, UIntMax: 50,
		PDKp: 0, PDKd: 0,
		NHyst: 15, TReset: 1.0,
	}
}

// HybridSMC combines an adaptive super-twisting proportional term and an
// adaptive integral term on a surface with cart-coupling:
//
//	u = u_eq(x) - k1*sqrt(|sigma|)*phi(sigma/epsilon) + u_int
//	    - kd*sigma - (PDKp*x + PDKd*xdot)
//	u_int <- clip(u_int - k2*phi(sigma/epsilon)*dt, +-UIntMax)
//
// k1 and k2 each evolve under the shared dead-zone adaptive law with their
// own rate/leak/bounds. A hysteresis counter watches for sustained
// saturation; once it reaches NHyst consecutive steps, and at least
// TReset seconds have elapsed since the previous reset, the controller
// zeroes its control and integral state for one step and relaxes both
// adaptive gains to their floors.
type HybridSMC struct {
	model   dynamics.Model
	gains   []float64
	opts    HybridOptions
	surface SlidingSurface
	equiv   *EquivalentControl

	k1, k2    float64
	uInt      float64
	lastSigma float64
	sat       saturationTracker

	violations  int
	elapsed     float64
	lastResetAt float64
	everReset   bool
}

// NewHybridSMC validates gains against HybridGainSpec and builds a
// HybridSMC, seeding k1/k2 at their kInit values.
func NewHybridSMC(model dynamics.Model, gains []float64, opts HybridOptions) (*HybridSMC, error) {
	if ok, reason := HybridGainSpec.CheckAll(gains); !ok {
		return nil, NewInvalidGainsError("hybrid", reason)
	}
	def := DefaultHybridOptions()
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
	if opts.Gamma1 <= 0 {
		opts.Gamma1 = def.Gamma1
	}
	if opts.Gamma2 <= 0 {
		opts.Gamma2 = def.Gamma2
	}
	if opts.DeadZone < 0 {
		opts.DeadZone = def.DeadZone
	}
	if opts.K1Max <= 0 {
		opts.K1Max = def.K1Max
	}
	if opts.K2Max <= 0 {
		opts.K2Max = def.K2Max
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = def.RateLimit
	}
	if opts.UIntMax <= 0 {
		opts.UIntMax = def.UIntMax
	}
	if opts.NHyst <= 0 {
		opts.NHyst = def.NHyst
	}
	if opts.TReset <= 0 {
		opts.TReset = def.TReset
	}
	kInit1, kInit2 := gains[4], gains[5]
	if kInit1 < opts.K1Min || kInit1 > opts.K1Max {
		return nil, NewInvalidGainsError("hybrid", "kInit1 must lie within [K1Min, K1Max]")
	}
	if kInit2 < opts.K2Min || kInit2 > opts.K2Max {
		return nil, NewInvalidGainsError("hybrid", "kInit2 must lie within [K2Min, K2Max]")
	}

	h := &HybridSMC{
		model: model,
		gains: append([]float64(nil), gains...),
		opts:  opts,
		surface: SlidingSurface{
			Lambda1: gains[0], Lambda2: gains[1],
			K1: kInit1, K2: kInit2,
			CartLambda: gains[2], CartGain: gains[3],
			Relative: opts.Relative,
		},
		k1: kInit1, k2: kInit2,
		sat:         newSaturationTracker(opts.NSat),
		lastResetAt: -opts.TReset,
	}
	if opts.UseEquivalent {
		h.equiv = NewEquivalentControl(model, opts.BetaMin)
	}
	return h, nil
}

func (h *HybridSMC) ComputeControl(x dynamics.State, dt float64) (dynamics.Control, Telemetry) {
	h.elapsed += dt

	if !x.IsValid() {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	sigma := h.surface.Compute(x)
	if !isFiniteScalar(sigma) {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	h.lastSigma = sigma

	phi := Switch(h.opts.Switching, sigma, h.opts.Epsilon)

	var uEq float64
	equivUsed := false
	if h.equiv != nil {
		L := [3]float64{0, h.surface.K1, h.surface.K2}
		v, _, ok := h.equiv.Compute(x, L)
		if ok {
			uEq = v
			equivUsed = true
		}
	}

	pd := h.opts.PDKp*x[0] + h.opts.PDKd*x[3]
	kd := h.gains[6]
	u := uEq - h.k1*math.Sqrt(math.Abs(sigma))*phi + h.uInt - kd*sigma - pd
	uc := clipControl(u, h.opts.UMax)
	state := h.sat.observe(float64(uc), h.opts.UMax)

	if state == StateSaturated {
		h.violations++
	} else {
		h.violations = 0
	}

	resetFired := false
	if h.violations >= h.opts.NHyst && h.elapsed-h.lastResetAt >= h.opts.TReset {
		uc = 0
		h.k1 = h.opts.K1Min
		h.k2 = h.opts.K2Min
		h.uInt = 0
		h.violations = 0
		h.lastResetAt = h.elapsed
		h.everReset = true
		state = StateResetFired
		resetFired = true
	} else if h.violations > 0 {
		state = StateResetPending
	}

	if !resetFired {
		h.uInt = clip(h.uInt-h.k2*phi*dt, -h.opts.UIntMax, h.opts.UIntMax)
		h.k1 = adaptiveLawStep(h.k1, h.gains[4], h.opts.Gamma1, h.opts.Leak1,
			h.opts.RateLimit, h.opts.K1Min, h.opts.K1Max, sigma, h.opts.DeadZone, dt)
		h.k2 = adaptiveLawStep(h.k2, h.gains[5], h.opts.Gamma2, h.opts.Leak2,
			h.opts.RateLimit, h.opts.K2Min, h.opts.K2Max, sigma, h.opts.DeadZone, dt)
	}

	return uc, Telemetry{
		Sigma: sigma, State: state, Valid: true, EquivalentUsed: equivUsed,
		AdaptiveGains: map[string]float64{"k1": h.k1, "k2": h.k2, "u_int": h.uInt},
	}
}

func (h *HybridSMC) Reset() {
	h.k1 = h.gains[4]
	h.k2 = h.gains[5]
	h.uInt = 0
	h.lastSigma = 0
	h.violations = 0
	h.elapsed = 0
	h.lastResetAt = -h.opts.TReset
	h.everReset = false
	h.sat.reset()
}

func (h *HybridSMC) GainSpec() GainSpec { return HybridGainSpec }

func (h *HybridSMC) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda1": h.surface.Lambda1, "lambda2": h.surface.Lambda2,
		"lambdaC": h.surface.CartLambda, "kC": h.surface.CartGain,
		"kInit1": h.gains[4], "kInit2": h.gains[5], "kd": h.gains[6],
		"k1": h.k1, "k2": h.k2, "u_int": h.uInt,
	}
}

func (h *HybridSMC) SetParam(name string, value float64) error {
	switch name {
	case "lambda1":
		h.surface.Lambda1, h.gains[0] = value, value
	case "lambda2":
		h.surface.Lambda2, h.gains[1] = value, value
	case "lambdaC":
		h.surface.CartLambda, h.gains[2] = value, value
	case "kC":
		h.surface.CartGain, h.gains[3] = value, value
	case "kInit1":
		h.gains[4] = value
	case "kInit2":
		h.gains[5] = value
	case "kd":
		h.gains[6] = value
	default:
		return NewUnknownParamError("hybrid", name)
	}
	return nil
}
