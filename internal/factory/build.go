package factory

import (
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// applyCommon overlays the override keys shared by every variant's
// Options onto a set of already-defaulted fields.
func applyCommon(overrides map[string]float64, epsilon, uMax, betaMin *float64, nSat *int, useEquivalent *bool) {
	if v, ok := overrides["epsilon"]; ok {
		*epsilon = v
	}
	if v, ok := overrides["u_max"]; ok {
		*uMax = v
	}
	if v, ok := overrides["beta_min"]; ok {
		*betaMin = v
	}
	if v, ok := overrides["n_sat"]; ok {
		*nSat = int(v)
	}
	if v, ok := overrides["use_equivalent"]; ok {
		*useEquivalent = v != 0
	}
}

func buildClassical(model dynamics.Model, gains []float64, overrides map[string]float64) (smc.Controller, error) {
	opts := smc.DefaultClassicalOptions()
	applyCommon(overrides, &opts.Epsilon, &opts.UMax, &opts.BetaMin, &opts.NSat, &opts.UseEquivalent)
	return smc.NewClassicalSMC(model, gains, opts)
}

func buildSTA(model dynamics.Model, gains []float64, overrides map[string]float64) (smc.Controller, error) {
	opts := smc.DefaultSTAOptions()
	applyCommon(overrides, &opts.Epsilon, &opts.UMax, &opts.BetaMin, &opts.NSat, &opts.UseEquivalent)
	if v, ok := overrides["z_max"]; ok {
		opts.ZMax = v
	}
	if v, ok := overrides["disturbance_bound"]; ok {
		opts.DisturbanceBound = v
	}
	if v, ok := overrides["beta_nominal"]; ok {
		opts.BetaNominal = v
	}
	return smc.NewSTASMC(model, gains, opts)
}

func buildAdaptive(model dynamics.Model, gains []float64, overrides map[string]float64) (smc.Controller, error) {
	opts := smc.DefaultAdaptiveOptions()
	applyCommon(overrides, &opts.Epsilon, &opts.UMax, &opts.BetaMin, &opts.NSat, &opts.UseEquivalent)
	if v, ok := overrides["gamma"]; ok {
		opts.Gamma = v
	}
	if v, ok := overrides["leak_rate"]; ok {
		opts.LeakRate = v
	}
	if v, ok := overrides["dead_zone"]; ok {
		opts.DeadZone = v
	}
	if v, ok := overrides["k0"]; ok {
		opts.K0 = v
	}
	if v, ok := overrides["k_min"]; ok {
		opts.KMin = v
	}
	if v, ok := overrides["k_max"]; ok {
		opts.KMax = v
	}
	if v, ok := overrides["rate_limit"]; ok {
		opts.RateLimit = v
	}
	return smc.NewAdaptiveSMC(model, gains, opts)
}

func buildHybrid(model dynamics.Model, gains []float64, overrides map[string]float64) (smc.Controller, error) {
	opts := smc.DefaultHybridOptions()
	applyCommon(overrides, &opts.Epsilon, &opts.UMax, &opts.BetaMin, &opts.NSat, &opts.UseEquivalent)
	if v, ok := overrides["relative"]; ok {
		opts.Relative = v != 0
	}
	if v, ok := overrides["gamma1"]; ok {
		opts.Gamma1 = v
	}
	if v, ok := overrides["gamma2"]; ok {
		opts.Gamma2 = v
	}
	if v, ok := overrides["leak1"]; ok {
		opts.Leak1 = v
	}
	if v, ok := overrides["leak2"]; ok {
		opts.Leak2 = v
	}
	if v, ok := overrides["dead_zone"]; ok {
		opts.DeadZone = v
	}
	if v, ok := overrides["k1_min"]; ok {
		opts.K1Min = v
	}
	if v, ok := overrides["k1_max"]; ok {
		opts.K1Max = v
	}
	if v, ok := overrides["k2_min"]; ok {
		opts.K2Min = v
	}
	if v, ok := overrides["k2_max"]; ok {
		opts.K2Max = v
	}
	if v, ok := overrides["rate_limit"]; ok {
		opts.RateLimit = v
	}
	if v, ok := overrides["u_int_max"]; ok {
		opts.UIntMax = v
	}
	if v, ok := overrides["pd_kp"]; ok {
		opts.PDKp = v
	}
	if v, ok := overrides["pd_kd"]; ok {
		opts.PDKd = v
	}
	if v, ok := overrides["n_hyst"]; ok {
		opts.NHyst = int(v)
	}
	if v, ok := overrides["t_reset"]; ok {
		opts.TReset = v
	}
	return smc.NewHybridSMC(model, gains, opts)
}
