package cost_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dipsmc-pso/internal/batch"
	"github.com/san-kum/dipsmc-pso/internal/cost"
	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

var _ = Describe("EvaluateTrajectory", func() {
	var (
		weights cost.Weights
		norms   cost.NormConstants
		dt      float64
	)

	BeforeEach(func() {
		weights = cost.DefaultWeights()
		norms = cost.DefaultNormConstants()
		dt = 0.01
	})

	Context("a trajectory that never fails", func() {
		It("contributes zero stability penalty", func() {
			traj := batch.NewTrajectory(10)
			for i := 0; i < 10; i++ {
				traj.States = append(traj.States, dynamics.NewState(0, 0, 0, 0, 0, 0))
				traj.Controls = append(traj.Controls, 0)
				traj.Sigma = append(traj.Sigma, 0)
			}
			traj.States = append(traj.States, dynamics.NewState(0, 0, 0, 0, 0, 0))
			traj.TFail = math.NaN()

			j := cost.EvaluateTrajectory(traj, dt, weights, norms)
			Expect(j).To(BeNumerically("==", 0))
		})
	})

	Context("a trajectory that fails immediately", func() {
		It("is penalized more than one that fails near the end", func() {
			early := batch.NewTrajectory(100)
			late := batch.NewTrajectory(100)
			for i := 0; i < 100; i++ {
				x := dynamics.NewState(0, 0, 0, 0, 0, 0)
				early.States = append(early.States, x)
				late.States = append(late.States, x)
				early.Controls = append(early.Controls, 0)
				late.Controls = append(late.Controls, 0)
				early.Sigma = append(early.Sigma, 0)
				late.Sigma = append(late.Sigma, 0)
			}
			early.States = append(early.States, dynamics.NewState(0, 0, 0, 0, 0, 0))
			late.States = append(late.States, dynamics.NewState(0, 0, 0, 0, 0, 0))
			early.Failed, late.Failed = true, true
			early.TFail = 0.0
			late.TFail = 0.9

			jEarly := cost.EvaluateTrajectory(early, dt, weights, norms)
			jLate := cost.EvaluateTrajectory(late, dt, weights, norms)
			Expect(jEarly).To(BeNumerically(">", jLate))
		})
	})

	Context("a trajectory with nonzero control effort", func() {
		It("increases cost relative to an otherwise-identical zero-control trajectory", func() {
			quiet := batch.NewTrajectory(20)
			loud := batch.NewTrajectory(20)
			for i := 0; i < 20; i++ {
				x := dynamics.NewState(0, 0, 0, 0, 0, 0)
				quiet.States = append(quiet.States, x)
				loud.States = append(loud.States, x)
				quiet.Controls = append(quiet.Controls, 0)
				loud.Controls = append(loud.Controls, 50)
				quiet.Sigma = append(quiet.Sigma, 0)
				loud.Sigma = append(loud.Sigma, 0)
			}
			quiet.States = append(quiet.States, dynamics.NewState(0, 0, 0, 0, 0, 0))
			loud.States = append(loud.States, dynamics.NewState(0, 0, 0, 0, 0, 0))

			Expect(cost.EvaluateTrajectory(loud, dt, weights, norms)).To(
				BeNumerically(">", cost.EvaluateTrajectory(quiet, dt, weights, norms)))
		})
	})
})
