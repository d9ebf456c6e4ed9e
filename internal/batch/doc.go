// Package batch runs many independent controller/plant trajectories
// concurrently, one goroutine per trajectory fanned out with
// sync.WaitGroup (the same shape as the teacher lineage's
// internal/sim.Ensemble), and freezes a trajectory's state in place the
// first time it goes singular or its pendulum angles leave the valid
// envelope rather than aborting the batch.
package batch
