package dynamics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipsmc-pso/internal/numerics"
)

// Full is the exact-Lagrangian DIP model: it distinguishes each
// pendulum's centre-of-mass offset from its full length, carries each
// link's own moment of inertia, and includes the velocity-product
// Coriolis terms the [Simplified] model drops.
type Full struct {
	params PhysicsParams
	kernel *numerics.Kernel
}

// NewFull constructs a Full model for the given parameters.
func NewFull(params PhysicsParams) *Full {
	return &Full{params: params, kernel: numerics.NewKernel()}
}

func (f *Full) Params() PhysicsParams { return f.params }

func (f *Full) Matrices(x State) (M, C, G, B *mat.Dense) {
	p := f.params
	theta1, theta2 := x[1], x[2]
	omega1, omega2 := x[4], x[5]

	mc, m1, m2 := p.CartMass, p.Pend1Mass, p.Pend2Mass
	l1, r2 := p.Pend1Length, p.Pend2COM
	r1 := p.Pend1COM
	I1, I2 := p.Pend1Inertia, p.Pend2Inertia
	g := p.Gravity

	c1, s1 := math.Cos(theta1), math.Sin(theta1)
	c2, s2 := math.Cos(theta2), math.Sin(theta2)
	cd, sd := math.Cos(theta1-theta2), math.Sin(theta1-theta2)

	a1 := m1*r1 + m2*l1 // cart-pend1 coupling: link 1's own COM plus link 2 hanging off its tip
	a2 := m2 * r2
	j1 := I1 + m1*r1*r1 + m2*l1*l1 // link-1 inertia about the cart pivot
	j2 := I2 + m2*r2*r2

	M = mat.NewDense(3, 3, []float64{
		mc + m1 + m2, a1 * c1, a2 * c2,
		a1 * c1, j1, m2 * l1 * r2 * cd,
		a2 * c2, m2 * l1 * r2 * cd, j2,
	})

	C = mat.NewDense(3, 3, []float64{
		p.CartFriction, -a1 * s1 * omega1, -a2 * s2 * omega2,
		0, p.Pend1Friction, m2 * l1 * r2 * sd * omega2,
		0, -m2 * l1 * r2 * sd * omega1, p.Pend2Friction,
	})

	G = mat.NewDense(3, 1, []float64{
		0,
		-a1 * g * s1,
		-a2 * g * s2,
	})

	B = inputDistribution()
	return M, C, G, B
}

func (f *Full) RHS(x State, u Control) (State, error) {
	M, C, G, B := f.Matrices(x)
	return rhsFromMatrices(f.kernel, x, u, M, C, G, B)
}

func (f *Full) Energy(x State) float64 {
	p := f.params
	theta1, theta2, omega1, omega2 := x[1], x[2], x[4], x[5]
	vel := x[3]
	m1, m2, l1, r1, r2, g, mc := p.Pend1Mass, p.Pend2Mass, p.Pend1Length, p.Pend1COM, p.Pend2COM, p.Gravity, p.CartMass
	I1, I2 := p.Pend1Inertia, p.Pend2Inertia

	vx1 := vel + r1*omega1*math.Cos(theta1)
	vy1 := r1 * omega1 * math.Sin(theta1)
	vx2 := vel + l1*omega1*math.Cos(theta1) + r2*omega2*math.Cos(theta2)
	vy2 := l1*omega1*math.Sin(theta1) + r2*omega2*math.Sin(theta2)

	ke := 0.5*mc*vel*vel +
		0.5*m1*(vx1*vx1+vy1*vy1) + 0.5*I1*omega1*omega1 +
		0.5*m2*(vx2*vx2+vy2*vy2) + 0.5*I2*omega2*omega2
	pe := m1*g*r1*math.Cos(theta1) + m2*g*(l1*math.Cos(theta1)+r2*math.Cos(theta2))

	return ke + pe
}
