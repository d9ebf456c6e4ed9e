// Package tuning assembles the data-flow PSO -> factory(kind, gains) ->
// controller; (controller, physics-draw) -> batch simulator -> cost
// aggregator -> PSO into a single pso.Evaluator, so a caller never has
// to wire internal/pso, internal/factory, internal/batch, and
// internal/cost together by hand.
package tuning
