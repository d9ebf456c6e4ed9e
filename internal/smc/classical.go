package smc

import (
	"math"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

// ClassicalGainSpec is the gain vector contract for [ClassicalSMC]:
// [lambda1, lambda2, k1, k2, K, kd].
var ClassicalGainSpec = GainSpec{
	Names: []string{"lambda1", "lambda2", "k1", "k2", "K", "kd"},
	Lower: []float64{0.1, 0.1, 0.1, 0.1, 0, 0},
	Upper: []float64{100, 100, 100, 100, 300, 50},
	Validate: func(g []float64) (bool, string) {
		if ok, reason := allPositive(g, "lambda1", "lambda2", "k1", "k2"); !ok {
			return false, reason
		}
		if g[4] < 0 {
			return false, "K must be >= 0"
		}
		if g[5] < 0 {
			return false, "kd must be >= 0"
		}
		return true, ""
	},
}

// ClassicalOptions holds the non-gain configuration of a ClassicalSMC.
type ClassicalOptions struct {
	Epsilon       float64
	Switching     SwitchingMethod
	UMax          float64
	UseEquivalent bool
	BetaMin       float64
	NSat          int // consecutive saturated steps before StateSaturated
}

// DefaultClassicalOptions returns the scenario-1 defaults from the spec.
func DefaultClassicalOptions() ClassicalOptions {
	return ClassicalOptions{
		Epsilon:       0.02,
		Switching:     SwitchTanh,
		UMax:          150,
		UseEquivalent: true,
		BetaMin:       DefaultBetaMin,
		NSat:          10,
	}
}

// ClassicalSMC is u = u_eq(x) - K*phi(sigma/epsilon) - kd*sigma.
type ClassicalSMC struct {
	model   dynamics.Model
	gains   []float64
	opts    ClassicalOptions
	surface SlidingSurface
	equiv   *EquivalentControl

	lastSigma float64
	lastU     float64
	sat       saturationTracker
}

// NewClassicalSMC validates gains against ClassicalGainSpec and builds a
// ClassicalSMC. opts with a zero Epsilon/UMax get the scenario defaults.
func NewClassicalSMC(model dynamics.Model, gains []float64, opts ClassicalOptions) (*ClassicalSMC, error) {
	if ok, reason := ClassicalGainSpec.CheckAll(gains); !ok {
		return nil, NewInvalidGainsError("classical", reason)
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultClassicalOptions().Epsilon
	}
	if opts.UMax <= 0 {
		opts.UMax = DefaultClassicalOptions().UMax
	}
	if opts.NSat <= 0 {
		opts.NSat = DefaultClassicalOptions().NSat
	}
	if opts.Switching == "" {
		opts.Switching = SwitchTanh
	}

	c := &ClassicalSMC{
		model: model,
		gains: append([]float64(nil), gains...),
		opts:  opts,
		surface: SlidingSurface{
			Lambda1: gains[0], Lambda2: gains[1],
			K1: gains[2], K2: gains[3],
		},
		sat: newSaturationTracker(opts.NSat),
	}
	if opts.UseEquivalent {
		c.equiv = NewEquivalentControl(model, opts.BetaMin)
	}
	return c, nil
}

func (c *ClassicalSMC) ComputeControl(x dynamics.State, _ float64) (dynamics.Control, Telemetry) {
	if !x.IsValid() {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}

	sigma := c.surface.Compute(x)
	if !isFiniteScalar(sigma) {
		return 0, Telemetry{State: StateInvalid, Valid: false}
	}
	c.lastSigma = sigma

	phi := Switch(c.opts.Switching, sigma, c.opts.Epsilon)

	var uEq float64
	equivUsed := false
	if c.equiv != nil {
		L := [3]float64{0, c.surface.K1, c.surface.K2}
		v, _, ok := c.equiv.Compute(x, L)
		if ok {
			uEq = v
			equivUsed = true
		}
	}

	K, kd := c.gains[4], c.gains[5]
	u := uEq - K*phi - kd*sigma
	uc := clipControl(u, c.opts.UMax)
	state := c.sat.observe(float64(uc), c.opts.UMax)
	c.lastU = float64(uc)

	return uc, Telemetry{Sigma: sigma, State: state, Valid: true, EquivalentUsed: equivUsed}
}

func (c *ClassicalSMC) Reset() {
	c.lastSigma = 0
	c.lastU = 0
	c.sat.reset()
}

func (c *ClassicalSMC) GainSpec() GainSpec { return ClassicalGainSpec }

func (c *ClassicalSMC) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda1": c.surface.Lambda1, "lambda2": c.surface.Lambda2,
		"k1": c.surface.K1, "k2": c.surface.K2,
		"K": c.gains[4], "kd": c.gains[5],
		"epsilon": c.opts.Epsilon, "u_max": c.opts.UMax,
	}
}

func (c *ClassicalSMC) SetParam(name string, value float64) error {
	switch name {
	case "lambda1":
		c.surface.Lambda1, c.gains[0] = value, value
	case "lambda2":
		c.surface.Lambda2, c.gains[1] = value, value
	case "k1":
		c.surface.K1, c.gains[2] = value, value
	case "k2":
		c.surface.K2, c.gains[3] = value, value
	case "K":
		c.gains[4] = value
	case "kd":
		c.gains[5] = value
	case "epsilon":
		c.opts.Epsilon = value
	case "u_max":
		c.opts.UMax = value
	default:
		return NewUnknownParamError("classical", name)
	}
	return nil
}

func isFiniteScalar(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
