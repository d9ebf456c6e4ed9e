package batch

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// SimulateOne runs a single trajectory to cfg.Duration (or until ctx is
// cancelled), holding a dedicated integrator and controller so it shares
// no mutable state with any other trajectory.
func SimulateOne(ctx context.Context, model dynamics.Model, integrator *dynamics.RK4,
	controller smc.Controller, x0 dynamics.State, cfg Config) (Trajectory, error) {

	if err := cfg.Validate(); err != nil {
		return Trajectory{}, err
	}

	steps := cfg.Steps()
	traj := NewTrajectory(steps)

	x := x0.Clone()
	t := 0.0
	failed := false

	traj.States = append(traj.States, x.Clone())
	traj.Times = append(traj.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return traj, NewSimulationTimeoutError(-1, i)
		default:
		}

		var u dynamics.Control
		if !failed {
			var tel smc.Telemetry
			u, tel = controller.ComputeControl(x, cfg.Dt)
			traj.Sigma = append(traj.Sigma, tel.Sigma)
		} else {
			traj.Sigma = append(traj.Sigma, math.NaN())
		}
		traj.Controls = append(traj.Controls, u)

		if !failed {
			nx, err := integrator.Step(model, x, u, cfg.Dt)
			switch {
			case err != nil:
				failed = true
				traj.FailReason = err.Error()
				traj.TFail = t
			case !nx.IsValid():
				failed = true
				traj.FailReason = "non-finite state"
				traj.TFail = t
			case nx.AngleViolation():
				failed = true
				traj.FailReason = "pendulum angle envelope violated"
				traj.TFail = t
			default:
				x = nx
			}
		}

		t += cfg.Dt
		traj.States = append(traj.States, x.Clone())
		traj.Times = append(traj.Times, t)
	}

	traj.Failed = failed
	return traj, nil
}

// SimulateBatch runs len(initialStates) trajectories concurrently, one
// goroutine per trajectory fanned out with sync.WaitGroup. models and
// initialStates must have equal, matching length: pairing the same model
// with every initial state tunes a single physics draw over many start
// conditions, while pairing the same initial state with many perturbed
// models evaluates one start condition's robustness across physics
// draws. newController is called once per trajectory so each gets its
// own controller instance with independent internal state.
func SimulateBatch(ctx context.Context, models []dynamics.Model, newController func() smc.Controller,
	initialStates []dynamics.State, cfg Config) ([]Trajectory, error) {

	if len(models) != len(initialStates) {
		return nil, &ConfigError{Field: "models", Reason: "must have the same length as initialStates"}
	}

	n := len(initialStates)
	results := make([]Trajectory, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			integrator := dynamics.NewRK4()
			controller := newController()
			results[idx], errs[idx] = SimulateOne(ctx, models[idx], integrator, controller, initialStates[idx], cfg)
			if timeout, ok := errs[idx].(*SimulationTimeoutError); ok {
				timeout.TrajectoryIndex = idx
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
