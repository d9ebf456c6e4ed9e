package dynamics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipsmc-pso/internal/numerics"
)

// Simplified is the reduced-fidelity DIP model used for fast PSO tuning:
// it treats each pendulum as a point mass at its tip (full length rather
// than centre-of-mass offset, link inertia folded to zero) and drops the
// velocity-product Coriolis coupling, keeping only viscous friction on
// the diagonal of C. M and G remain fully nonlinear in the angles.
type Simplified struct {
	params PhysicsParams
	kernel *numerics.Kernel
}

// NewSimplified constructs a Simplified model for the given parameters.
func NewSimplified(params PhysicsParams) *Simplified {
	return &Simplified{params: params, kernel: numerics.NewKernel()}
}

func (s *Simplified) Params() PhysicsParams { return s.params }

func (s *Simplified) Matrices(x State) (M, C, G, B *mat.Dense) {
	p := s.params
	theta1, theta2 := x[1], x[2]
	omega1, omega2 := x[4], x[5]

	mc, m1, m2 := p.CartMass, p.Pend1Mass, p.Pend2Mass
	l1, l2, g := p.Pend1Length, p.Pend2Length, p.Gravity

	c1, s1 := math.Cos(theta1), math.Sin(theta1)
	c2, s2 := math.Cos(theta2), math.Sin(theta2)
	cd, sd := math.Cos(theta1-theta2), math.Sin(theta1-theta2)

	a1 := m1*l1 + m2*l1 // point-mass-at-tip coupling coefficient for link 1
	a2 := m2 * l2

	M = mat.NewDense(3, 3, []float64{
		mc + m1 + m2, a1 * c1, a2 * c2,
		a1 * c1, m1*l1*l1 + m2*l1*l1, m2 * l1 * l2 * cd,
		a2 * c2, m2 * l1 * l2 * cd, m2 * l2 * l2,
	})

	C = mat.NewDense(3, 3, nil)
	C.Set(0, 0, p.CartFriction)
	C.Set(1, 1, p.Pend1Friction)
	C.Set(2, 2, p.Pend2Friction)
	_ = sd // unused in the simplified model: no velocity-product coupling

	G = mat.NewDense(3, 1, []float64{
		0,
		-a1 * g * s1,
		-a2 * g * s2,
	})

	B = inputDistribution()
	_ = omega1
	_ = omega2
	return M, C, G, B
}

func (s *Simplified) RHS(x State, u Control) (State, error) {
	M, C, G, B := s.Matrices(x)
	return rhsFromMatrices(s.kernel, x, u, M, C, G, B)
}

func (s *Simplified) Energy(x State) float64 {
	p := s.params
	theta1, theta2, omega1, omega2 := x[1], x[2], x[4], x[5]
	vel := x[3]
	m1, m2, l1, l2, g, mc := p.Pend1Mass, p.Pend2Mass, p.Pend1Length, p.Pend2Length, p.Gravity, p.CartMass

	vx1 := vel + l1*omega1*math.Cos(theta1)
	vy1 := l1 * omega1 * math.Sin(theta1)
	vx2 := vel + l1*omega1*math.Cos(theta1) + l2*omega2*math.Cos(theta2)
	vy2 := l1*omega1*math.Sin(theta1) + l2*omega2*math.Sin(theta2)

	ke := 0.5*mc*vel*vel + 0.5*m1*(vx1*vx1+vy1*vy1) + 0.5*m2*(vx2*vx2+vy2*vy2)
	pe := m1*g*l1*math.Cos(theta1) + m2*g*(l1*math.Cos(theta1)+l2*math.Cos(theta2))

	return ke + pe
}
