// Package factory is the controller registry: it maps a controller kind
// name to its GainSpec and constructor, the way internal/experiment's
// Registry maps model/integrator/controller names to constructors in the
// teacher lineage. It never constructs a guaranteed-unstable controller.
package factory
