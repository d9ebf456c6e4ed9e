package smc

import "github.com/san-kum/dipsmc-pso/internal/dynamics"

// SlidingSurface computes the scalar sliding variable sigma for a state.
// The classical/adaptive form is sigma = lambda1*theta1 + lambda2*theta2
// + k1*theta1dot + k2*theta2dot; the hybrid variant adds cart terms and
// may measure theta2 relative to theta1 instead of absolutely.
type SlidingSurface struct {
	Lambda1, Lambda2 float64 // pendulum-angle gains; must be > 0
	K1, K2           float64 // pendulum-velocity gains; must be > 0
	CartLambda       float64 // hybrid only: cart-position gain
	CartGain         float64 // hybrid only: cart-velocity gain
	Relative         bool    // hybrid only: theta2 measured relative to theta1
}

// Compute evaluates sigma(x).
func (s SlidingSurface) Compute(x dynamics.State) float64 {
	theta1, theta2, omega1, omega2 := x[1], x[2], x[4], x[5]
	if s.Relative {
		theta2 -= theta1
		omega2 -= omega1
	}
	sigma := s.Lambda1*theta1 + s.Lambda2*theta2 + s.K1*omega1 + s.K2*omega2
	if s.CartLambda != 0 || s.CartGain != 0 {
		sigma += s.CartLambda*x[0] + s.CartGain*x[3]
	}
	return sigma
}

// Attractive reports whether the surface satisfies the attractiveness
// condition (all angle/velocity gains strictly positive).
func (s SlidingSurface) Attractive() bool {
	return s.Lambda1 > 0 && s.Lambda2 > 0 && s.K1 > 0 && s.K2 > 0
}
