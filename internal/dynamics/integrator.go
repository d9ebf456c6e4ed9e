package dynamics

// RK4 is a fixed-step fourth-order Runge-Kutta integrator holding u
// constant across its four stages. It keeps its stage and scratch
// buffers across calls the way internal/integrators/rk4.go in the teacher
// lineage does; each Step still allocates a copy of the scratch state per
// stage and a fresh result state.
type RK4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

// NewRK4 returns an RK4 stepper with no preallocated scratch; it sizes
// itself on first use.
func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

// Step advances x by dt under model's dynamics, holding u fixed across
// all four RK4 stages. It returns the SingularPlantError from any stage
// that trips the numerical kernel's condition-number ceiling, and the
// step is considered invalid in that case.
func (r *RK4) Step(model Model, x State, u Control, dt float64) (State, error) {
	n := len(x)
	r.ensureScratch(n)

	k1, err := model.RHS(x, u)
	if err != nil {
		return nil, err
	}
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2, err := model.RHS(r.scratch.Clone(), u)
	if err != nil {
		return nil, err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3, err := model.RHS(r.scratch.Clone(), u)
	if err != nil {
		return nil, err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4, err := model.RHS(r.scratch.Clone(), u)
	if err != nil {
		return nil, err
	}
	copy(r.k4, k4)

	result := make(State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	if !result.IsValid() {
		return nil, NewNonFiniteStateError()
	}
	return result, nil
}

// NonFiniteStateError is returned when an RK4 step produces a state with
// a NaN or Inf component, even though no stage reported a numerical
// kernel error; the batch simulator treats it identically to a singular
// plant.
type NonFiniteStateError struct{}

func NewNonFiniteStateError() *NonFiniteStateError { return &NonFiniteStateError{} }

func (e *NonFiniteStateError) Error() string {
	return "dynamics: RK4 step produced a non-finite state"
}
