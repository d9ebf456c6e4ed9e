package pso

import (
	"math"
	"math/rand"

	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// Particle is one swarm member: its current position/velocity in gain
// space, and its own best-seen position/cost.
type Particle struct {
	Position     []float64
	Velocity     []float64
	BestPosition []float64
	BestCost     float64
}

func cloneVec(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}

func sampleUniform(lo, hi []float64, rng *rand.Rand) []float64 {
	p := make([]float64, len(lo))
	for i := range p {
		p[i] = lo[i] + rng.Float64()*(hi[i]-lo[i])
	}
	return p
}

// initSwarm builds cfg.SwarmSize particles with positions uniform in
// gainSpec's bounds, resampling up to cfg.RejectMax times when a draw
// fails gainSpec's validator and falling back to the bounds midpoint if
// every resample still fails (spec §4.7 initialization).  Velocities are
// drawn uniform in [-vmax, vmax] rather than zero-initialized: this
// keeps the first iteration's exploration nonzero, a deliberate choice
// since the spec leaves "0 or uniform" open.
func initSwarm(gainSpec smc.GainSpec, cfg Config, rng *rand.Rand) ([]Particle, []float64) {
	lo, hi := gainSpec.Bounds()
	d := len(lo)
	vmax := make([]float64, d)
	for i := range vmax {
		vmax[i] = cfg.Eta * (hi[i] - lo[i])
	}

	particles := make([]Particle, cfg.SwarmSize)
	mid := gainSpec.Mid()
	for j := range particles {
		pos := sampleUniform(lo, hi, rng)
		attempts := 0
		for {
			if ok, _ := gainSpec.CheckAll(pos); ok {
				break
			}
			attempts++
			if attempts > cfg.RejectMax {
				pos = cloneVec(mid)
				break
			}
			pos = sampleUniform(lo, hi, rng)
		}

		vel := make([]float64, d)
		for i := range vel {
			vel[i] = vmax[i] * (2*rng.Float64() - 1)
		}

		particles[j] = Particle{
			Position:     pos,
			Velocity:     vel,
			BestPosition: cloneVec(pos),
			BestCost:     math.Inf(1),
		}
	}
	return particles, vmax
}

func positionsOf(particles []Particle) [][]float64 {
	out := make([][]float64, len(particles))
	for i, p := range particles {
		out[i] = p.Position
	}
	return out
}
