package pso

import (
	"math"
	"math/rand"

	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// Evaluator maps a full swarm of positions (S rows of d gains each) to S
// robust costs (spec §4.6). rng is the PSO's own generator, passed
// through so any physics-perturbation draws an evaluator makes (e.g.
// internal/cost.RobustCost) consume the same single generator as the
// swarm update instead of owning an independent one -- required by the
// single-RNG determinism contract. The PSO never inspects a position's
// meaning; internal/cost and internal/factory own that.
type Evaluator func(positions [][]float64, rng *rand.Rand) []float64

// Run drives the swarm for at most cfg.MaxIter iterations, stopping
// early on convergence, stagnation, or shouldStop (pass nil to disable
// cooperative shutdown). rng is the PSO's single owned generator: every
// random draw in initialization and every iteration's r1/r2 comes from
// it in a fixed order, so two Runs with the same seed and config produce
// bit-identical histories regardless of any other RNG use elsewhere in
// the process.
func Run(gainSpec smc.GainSpec, evaluate Evaluator, cfg Config, shouldStop func() bool) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	lo, hi := gainSpec.Bounds()
	d := len(lo)

	particles, vmax := initSwarm(gainSpec, cfg, rng)

	history := make([]IterationRecord, 0, cfg.MaxIter)
	gBest := make([]float64, d)
	gBestCost := math.Inf(1)
	gBestHistory := make([]float64, 0, cfg.MaxIter)

	evalAndUpdate := func() IterationRecord {
		costs := evaluate(positionsOf(particles), rng)
		sum, invalid := 0.0, 0
		for i, c := range costs {
			if math.IsNaN(c) || math.IsInf(c, 1) {
				invalid++
				continue
			}
			if c < particles[i].BestCost {
				particles[i].BestCost = c
				particles[i].BestPosition = cloneVec(particles[i].Position)
			}
			if c < gBestCost {
				gBestCost = c
				gBest = cloneVec(particles[i].Position)
			}
			sum += c
		}
		valid := len(costs) - invalid
		mean := 0.0
		if valid > 0 {
			mean = sum / float64(valid)
		}
		variance := 0.0
		if valid > 0 {
			for _, c := range costs {
				if math.IsNaN(c) || math.IsInf(c, 1) {
					continue
				}
				variance += (c - mean) * (c - mean)
			}
			variance /= float64(valid)
		}
		return IterationRecord{BestCost: gBestCost, Mean: mean, Std: math.Sqrt(variance), InvalidCount: invalid}
	}

	history = append(history, evalAndUpdate())
	gBestHistory = append(gBestHistory, gBestCost)

	stagnantFor := 0
	termination := TerminationMaxIter

	for iter := 0; iter < cfg.MaxIter; iter++ {
		if shouldStop != nil && shouldStop() {
			termination = TerminationStopped
			break
		}

		prevGBestCost := gBestCost
		for j := range particles {
			p := &particles[j]
			for i := 0; i < d; i++ {
				r1, r2 := rng.Float64(), rng.Float64()
				p.Velocity[i] = cfg.W*p.Velocity[i] +
					cfg.C1*r1*(p.BestPosition[i]-p.Position[i]) +
					cfg.C2*r2*(gBest[i]-p.Position[i])
				p.Velocity[i] = clip(p.Velocity[i], -vmax[i], vmax[i])
			}
			for i := 0; i < d; i++ {
				p.Position[i] = clip(p.Position[i]+p.Velocity[i], lo[i], hi[i])
			}
		}

		rec := evalAndUpdate()
		history = append(history, rec)
		gBestHistory = append(gBestHistory, gBestCost)

		if gBestCost < prevGBestCost-1e-15 {
			stagnantFor = 0
		} else {
			stagnantFor++
		}
		if stagnantFor >= cfg.KStag {
			termination = TerminationStagnated
			break
		}

		if n := len(gBestHistory); n > cfg.KConv {
			delta := math.Abs(gBestHistory[n-1] - gBestHistory[n-1-cfg.KConv])
			if delta < cfg.EpsConv {
				termination = TerminationConverged
				break
			}
		}
	}

	if math.IsInf(gBestCost, 1) {
		return noValidCandidateResult(cfg.Seed, history), nil
	}

	return Result{
		BestGains:   gBest,
		BestCost:    gBestCost,
		History:     history,
		Termination: termination,
		Seed:        cfg.Seed,
	}, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
