// Package numerics provides the adaptive-regularization matrix inverter
// shared by every plant model and by controllers that need model-based
// equivalent control.
//
// [Invert] never panics on an ill-conditioned matrix: it grows a
// Tikhonov regularizer with the condition number and only gives up
// (returning [*SingularPlantError]) once the raw condition number exceeds
// KappaMax or the regularized inverse is non-finite. Callers translate that error into trajectory
// invalidity; it is never retried here.
package numerics
