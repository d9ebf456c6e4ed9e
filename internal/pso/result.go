package pso

import "math"

// TerminationReason names why Run stopped iterating.
type TerminationReason string

const (
	TerminationMaxIter         TerminationReason = "max_iter"
	TerminationConverged       TerminationReason = "converged"
	TerminationStagnated       TerminationReason = "stagnated"
	TerminationStopped         TerminationReason = "stopped"
	TerminationNoValidCandidate TerminationReason = "no_valid_candidate"
)

// IterationRecord is one row of Run's per-iteration history.
type IterationRecord struct {
	BestCost     float64
	Mean         float64
	Std          float64
	InvalidCount int
}

// Result is PSOResult from §6: the best gains found, their cost, the
// full per-iteration history, why the run stopped, and the seed used.
type Result struct {
	BestGains   []float64
	BestCost    float64
	History     []IterationRecord
	Termination TerminationReason
	Seed        int64
}

// noValidCandidateResult is the sentinel §6 requires when no particle
// ever produced a finite cost.
func noValidCandidateResult(seed int64, history []IterationRecord) Result {
	return Result{
		BestGains:   nil,
		BestCost:    math.Inf(1),
		History:     history,
		Termination: TerminationNoValidCandidate,
		Seed:        seed,
	}
}
