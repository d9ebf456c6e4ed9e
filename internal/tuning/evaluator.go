package tuning

import (
	"context"
	"math"
	"math/rand"

	"github.com/san-kum/dipsmc-pso/internal/batch"
	"github.com/san-kum/dipsmc-pso/internal/cost"
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/factory"
	"github.com/san-kum/dipsmc-pso/internal/pso"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// Problem bundles everything a robust evaluator needs to turn a
// position in gain space into a scalar cost, beyond the registry and
// kind that select which controller it builds.
type Problem struct {
	Model   dynamics.Model
	X0      dynamics.State
	SimCfg  batch.Config
	Robust  cost.RobustConfig
	Weights cost.Weights
	Norms   cost.NormConstants
}

// NewRobustEvaluator returns a pso.Evaluator that, for every position
// the swarm hands it, builds a kind controller from registry, runs
// cost.RobustCost's perturbed-physics draws against it, and returns the
// aggregated robust cost. The rng the PSO passes into the evaluator at
// call time is forwarded unchanged into every RobustCost call -- the
// perturbation draws for an entire swarm of positions are therefore
// just the next items consumed off the PSO's own generator, preserving
// the single-RNG determinism contract instead of each evaluation
// owning an independent stream. A position whose gains fail the
// registry's validator costs +Inf rather than erroring the whole run,
// so the swarm simply steers away from it.
func NewRobustEvaluator(registry *factory.Registry, kind factory.Kind, p Problem) pso.Evaluator {
	return func(positions [][]float64, rng *rand.Rand) []float64 {
		costs := make([]float64, len(positions))
		for i, gains := range positions {
			if ok, _ := registry.ValidateGains(kind, gains); !ok {
				costs[i] = math.Inf(1)
				continue
			}

			newController := func() smc.Controller {
				c, err := registry.Create(kind, gains, factory.CreateOptions{}, p.Model)
				if err != nil {
					panic(err) // gains already validated above
				}
				return c
			}

			j, _, err := cost.RobustCost(context.Background(), p.Model, newController, p.X0,
				p.SimCfg, p.Robust, p.Weights, p.Norms, rng)
			if err != nil {
				costs[i] = math.Inf(1)
				continue
			}
			costs[i] = j
		}
		return costs
	}
}
