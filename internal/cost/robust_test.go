package cost_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dipsmc-pso/internal/batch"
	"github.com/san-kum/dipsmc-pso/internal/cost"
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

func newFixedController() smc.Controller {
	model := dynamics.NewSimplified(dynamics.DefaultPhysicsParams())
	c, err := smc.NewClassicalSMC(model, []float64{10, 8, 5, 4, 40, 2}, smc.DefaultClassicalOptions())
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("RobustCost", func() {
	var (
		model   dynamics.Model
		x0      dynamics.State
		simCfg  batch.Config
		weights cost.Weights
		norms   cost.NormConstants
	)

	BeforeEach(func() {
		model = dynamics.NewSimplified(dynamics.DefaultPhysicsParams())
		x0 = dynamics.NewState(0, 0.05, -0.03, 0, 0, 0)
		simCfg = batch.Config{Duration: 0.3, Dt: 0.01}
		weights = cost.DefaultWeights()
		norms = cost.DefaultNormConstants()
	})

	It("is deterministic across two runs with the same seed", func() {
		cfg := cost.RobustConfig{Draws: 5, Perturbation: 0.05, MeanWeight: 0.7, MaxWeight: 0.3}

		rng1 := rand.New(rand.NewSource(42))
		j1, costs1, err := cost.RobustCost(context.Background(), model, newFixedController, x0, simCfg, cfg, weights, norms, rng1)
		Expect(err).NotTo(HaveOccurred())

		rng2 := rand.New(rand.NewSource(42))
		j2, costs2, err := cost.RobustCost(context.Background(), model, newFixedController, x0, simCfg, cfg, weights, norms, rng2)
		Expect(err).NotTo(HaveOccurred())

		Expect(j1).To(Equal(j2))
		Expect(costs1).To(Equal(costs2))
	})

	It("increasing draws does not decrease the expected max-term contribution", func() {
		rngSmall := rand.New(rand.NewSource(7))
		cfgSmall := cost.RobustConfig{Draws: 1, Perturbation: 0.05, MeanWeight: 0, MaxWeight: 1}
		_, costsSmall, err := cost.RobustCost(context.Background(), model, newFixedController, x0, simCfg, cfgSmall, weights, norms, rngSmall)
		Expect(err).NotTo(HaveOccurred())

		rngLarge := rand.New(rand.NewSource(7))
		cfgLarge := cost.RobustConfig{Draws: 25, Perturbation: 0.05, MeanWeight: 0, MaxWeight: 1}
		_, costsLarge, err := cost.RobustCost(context.Background(), model, newFixedController, x0, simCfg, cfgLarge, weights, norms, rngLarge)
		Expect(err).NotTo(HaveOccurred())

		maxOf := func(vs []float64) float64 {
			m := vs[0]
			for _, v := range vs {
				if v > m {
					m = v
				}
			}
			return m
		}
		Expect(maxOf(costsLarge)).To(BeNumerically(">=", maxOf(costsSmall)))
	})

	It("degenerates to a single nominal-physics evaluation when Draws=1 and Perturbation=0", func() {
		cfg := cost.RobustConfig{Draws: 1, Perturbation: 0, MeanWeight: 0.7, MaxWeight: 0.3}
		rng := rand.New(rand.NewSource(1))
		_, costs, err := cost.RobustCost(context.Background(), model, newFixedController, x0, simCfg, cfg, weights, norms, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(costs).To(HaveLen(1))
	})
})
