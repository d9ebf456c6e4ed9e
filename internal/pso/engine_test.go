package pso_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dipsmc-pso/internal/pso"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// sphereGainSpec is a 2-dimensional unconstrained gain spec standing in
// for a real controller's GainSpec, used to exercise the swarm mechanics
// against a known-minimum test function rather than a real controller.
var sphereGainSpec = smc.GainSpec{
	Names: []string{"x", "y"},
	Lower: []float64{-10, -10},
	Upper: []float64{10, 10},
}

func sphereEvaluator(positions [][]float64, rng *rand.Rand) []float64 {
	costs := make([]float64, len(positions))
	for i, p := range positions {
		costs[i] = p[0]*p[0] + p[1]*p[1]
	}
	return costs
}

var _ = Describe("Run", func() {
	It("converges toward the sphere function's minimum at the origin", func() {
		cfg := pso.DefaultConfig()
		cfg.MaxIter = 60
		result, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.BestCost).To(BeNumerically("<", 0.5))
		Expect(result.BestGains).NotTo(BeNil())
	})

	It("produces identical g_best, J_gbest, and history across two runs with the same seed", func() {
		cfg := pso.DefaultConfig()
		cfg.Seed = 42

		r1, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		r2, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(r1.BestGains).To(Equal(r2.BestGains))
		Expect(r1.BestCost).To(Equal(r2.BestCost))
		Expect(r1.History).To(Equal(r2.History))
		Expect(r1.Termination).To(Equal(r2.Termination))
	})

	It("is unaffected by process-wide math/rand state (no global RNG reads)", func() {
		cfg := pso.DefaultConfig()
		cfg.Seed = 7

		rand.Seed(1)
		baseline, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		rand.Seed(999999) // poison the process-wide generator differently
		for i := 0; i < 1000; i++ {
			rand.Float64()
		}
		poisoned, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(poisoned.BestGains).To(Equal(baseline.BestGains))
		Expect(poisoned.BestCost).To(Equal(baseline.BestCost))
		Expect(poisoned.History).To(Equal(baseline.History))
	})

	It("respects shouldStop between iterations", func() {
		cfg := pso.DefaultConfig()
		cfg.MaxIter = 1000
		calls := 0
		result, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, func() bool {
			calls++
			return calls > 2
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Termination).To(Equal(pso.TerminationStopped))
		Expect(len(result.History)).To(BeNumerically("<", cfg.MaxIter))
	})

	It("returns the no_valid_candidate sentinel when the evaluator never produces a finite cost", func() {
		cfg := pso.DefaultConfig()
		cfg.MaxIter = 3
		allInvalid := func(positions [][]float64, rng *rand.Rand) []float64 {
			costs := make([]float64, len(positions))
			for i := range costs {
				costs[i] = math.Inf(1)
			}
			return costs
		}
		result, err := pso.Run(sphereGainSpec, allInvalid, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Termination).To(Equal(pso.TerminationNoValidCandidate))
		Expect(result.BestGains).To(BeNil())
	})

	It("rejects an invalid config", func() {
		cfg := pso.DefaultConfig()
		cfg.SwarmSize = 0
		_, err := pso.Run(sphereGainSpec, sphereEvaluator, cfg, nil)
		Expect(err).To(HaveOccurred())
	})
})
