package cost

import (
	"context"
	"math/rand"

	"github.com/san-kum/dipsmc-pso/internal/batch"
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// PerturbParams scales every physical constant of p by an independent
// uniform factor in [1-perturbation, 1+perturbation], drawn from rng.
// KappaMax is left untouched -- it is a numerical-kernel policy knob,
// not a physical constant.
func PerturbParams(p dynamics.PhysicsParams, perturbation float64, rng *rand.Rand) dynamics.PhysicsParams {
	factor := func() float64 { return 1 + perturbation*(2*rng.Float64()-1) }
	p.CartMass *= factor()
	p.Pend1Mass *= factor()
	p.Pend2Mass *= factor()
	p.Pend1Length *= factor()
	p.Pend2Length *= factor()
	p.Pend1COM *= factor()
	p.Pend2COM *= factor()
	p.Pend1Inertia *= factor()
	p.Pend2Inertia *= factor()
	p.Gravity *= factor()
	p.CartFriction *= factor()
	p.Pend1Friction *= factor()
	p.Pend2Friction *= factor()
	return p
}

// rebuild constructs a fresh model of the same concrete kind as model,
// over params, so perturbation never changes fidelity tier.
func rebuild(model dynamics.Model, params dynamics.PhysicsParams) dynamics.Model {
	switch model.(type) {
	case *dynamics.Full:
		return dynamics.NewFull(params)
	default:
		return dynamics.NewSimplified(params)
	}
}

// RobustCost draws cfg.Draws independent perturbed-physics copies of
// model (cfg.Draws=1 with cfg.Perturbation=0 degenerates to a single
// nominal-physics evaluation), simulates x0 on each, and aggregates the
// per-draw costs as a*mean + b*max. rng is owned by the caller (the PSO
// engine); RobustCost draws its perturbation factors from it, advancing
// it, and holds no generator of its own, preserving the single-RNG
// determinism contract.
func RobustCost(ctx context.Context, model dynamics.Model, newController func() smc.Controller,
	x0 dynamics.State, simCfg batch.Config, cfg RobustConfig, weights Weights, norms NormConstants,
	rng *rand.Rand) (float64, []float64, error) {

	draws := cfg.Draws
	if draws <= 0 {
		draws = 1
	}

	models := make([]dynamics.Model, draws)
	states := make([]dynamics.State, draws)
	base := model.Params()
	for i := 0; i < draws; i++ {
		if cfg.Perturbation > 0 {
			models[i] = rebuild(model, PerturbParams(base, cfg.Perturbation, rng))
		} else {
			models[i] = model
		}
		states[i] = x0
	}

	trajectories, err := batch.SimulateBatch(ctx, models, newController, states, simCfg)
	if err != nil {
		if _, ok := err.(*batch.SimulationTimeoutError); !ok {
			return 0, nil, err
		}
	}

	costs := make([]float64, len(trajectories))
	mean, max := 0.0, 0.0
	for i, traj := range trajectories {
		j := EvaluateTrajectory(traj, simCfg.Dt, weights, norms)
		costs[i] = j
		mean += j
		if i == 0 || j > max {
			max = j
		}
	}
	mean /= float64(len(trajectories))

	a, b := cfg.MeanWeight, cfg.MaxWeight
	if a == 0 && b == 0 {
		a, b = DefaultRobustConfig().MeanWeight, DefaultRobustConfig().MaxWeight
	}
	return a*mean + b*max, costs, nil
}
