// Package pso implements the particle swarm optimizer that tunes a
// controller's gain vector: it owns a single seeded math/rand generator,
// drives an injected evaluator over the whole swarm each iteration, and
// knows nothing about controllers, physics, or cost terms -- that
// decoupling lives at the boundary with internal/cost and
// internal/factory.
package pso
