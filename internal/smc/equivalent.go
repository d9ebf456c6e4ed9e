package smc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/numerics"
)

// DefaultBetaMin is the controllability-scalar floor below which
// equivalent control is suppressed rather than dividing by a near-zero
// gain.
const DefaultBetaMin = 1e-4

// EquivalentControl computes the model-based feedforward u_eq(x) that
// would hold sigma_dot = 0 if the model were exact. It is the only place
// in this package that inverts the plant's inertia matrix.
type EquivalentControl struct {
	model   dynamics.Model
	kernel  *numerics.Kernel
	betaMin float64
}

// NewEquivalentControl builds a solver over model with the given
// controllability floor (pass <= 0 to use DefaultBetaMin).
func NewEquivalentControl(model dynamics.Model, betaMin float64) *EquivalentControl {
	if betaMin <= 0 {
		betaMin = DefaultBetaMin
	}
	return &EquivalentControl{model: model, kernel: numerics.NewKernel(), betaMin: betaMin}
}

// Compute returns (u_eq, beta, ok). ok is false when the plant is
// singular at x or |beta| < betaMin, in which case u_eq is 0 per the
// spec's contract -- callers must not use u_eq in that case expecting a
// feedforward effect.
//
// L is the projector expressing sigma_dot's dependence on qddot =
// (xddot, theta1ddot, theta2ddot); for the classical/adaptive surface
// sigma = lambda1*theta1+lambda2*theta2+k1*theta1dot+k2*theta2dot, its
// time derivative contributes k1*theta1ddot + k2*theta2ddot, so
// L = [0, k1, k2] (the lambda terms depend on velocities already present
// in sigma, not accelerations).
func (e *EquivalentControl) Compute(x dynamics.State, L [3]float64) (uEq, beta float64, ok bool) {
	M, C, G, B := e.model.Matrices(x)
	Minv, err := e.kernel.Invert(M)
	if err != nil {
		return 0, 0, false
	}

	var minvB mat.Dense
	minvB.Mul(Minv, B)
	beta = L[0]*minvB.At(0, 0) + L[1]*minvB.At(1, 0) + L[2]*minvB.At(2, 0)
	if absf(beta) < e.betaMin {
		return 0, beta, false
	}

	qdot := mat.NewDense(3, 1, []float64{x[3], x[4], x[5]})
	var cqdot mat.Dense
	cqdot.Mul(C, qdot)
	cqdot.Add(&cqdot, G)

	var minvCG mat.Dense
	minvCG.Mul(Minv, &cqdot)
	numerator := L[0]*minvCG.At(0, 0) + L[1]*minvCG.At(1, 0) + L[2]*minvCG.At(2, 0)

	return numerator / beta, beta, true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
