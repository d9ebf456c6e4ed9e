// Package cost turns a batch.Trajectory into the scalar fitness PSO
// minimizes: a weighted integral of tracking error, control effort,
// control-rate effort, sliding-surface effort, and an instability
// penalty, aggregated across perturbed-physics draws as a convex
// combination of the mean and the worst draw.
package cost
