package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipsmc-pso/internal/numerics"
)

// Model is the common contract for the simplified and full DIP plants:
// compute the Lagrangian matrices, the right-hand side of the ODE, and
// (for the conservative test suite) the total mechanical energy.
type Model interface {
	Params() PhysicsParams
	// Matrices returns inertia M (3x3), Coriolis/damping C (3x3), gravity
	// G (3x1), and input distribution B (3x1, always [1,0,0]^T).
	Matrices(x State) (M, C, G, B *mat.Dense)
	// RHS evaluates xdot = f(x,u), inverting M via the numerical kernel.
	RHS(x State, u Control) (State, error)
	// Energy returns kinetic + potential energy; only meaningful for the
	// undamped, uncontrolled configuration used by conservation tests.
	Energy(x State) float64
}

// rhsFromMatrices is shared by both plants: qddot = Minv*(B*u - C*qdot - G),
// stacked with qdot to form xdot.
func rhsFromMatrices(kernel *numerics.Kernel, x State, u Control, M, C, G, B *mat.Dense) (State, error) {
	qdot := mat.NewDense(3, 1, []float64{x[3], x[4], x[5]})

	var cqdot mat.Dense
	cqdot.Mul(C, qdot)

	var forcing mat.Dense
	forcing.Scale(float64(u), B)
	forcing.Sub(&forcing, &cqdot)
	forcing.Sub(&forcing, G)

	Minv, err := kernel.Invert(M)
	if err != nil {
		return nil, err
	}

	var qddot mat.Dense
	qddot.Mul(Minv, &forcing)

	return State{
		x[3], x[4], x[5],
		qddot.At(0, 0), qddot.At(1, 0), qddot.At(2, 0),
	}, nil
}

func inputDistribution() *mat.Dense {
	return mat.NewDense(3, 1, []float64{1, 0, 0})
}
