package numerics

import "fmt"

// SingularPlantError is raised by [Kernel.Invert] when a matrix's raw
// condition number (before any regularization) exceeds KappaMax, or when
// the regularized inverse has a non-finite entry. It is never retried at
// this level; callers (the plant, and ultimately the batch simulator)
// translate it into trajectory invalidity.
type SingularPlantError struct {
	Kappa    float64 // observed condition number
	KappaMax float64 // configured ceiling that was exceeded
}

func (e *SingularPlantError) Error() string {
	return fmt.Sprintf("numerics: singular plant, condition number %.3e exceeds limit %.3e", e.Kappa, e.KappaMax)
}

// NewSingularPlantError constructs a [SingularPlantError].
func NewSingularPlantError(kappa, kappaMax float64) *SingularPlantError {
	return &SingularPlantError{Kappa: kappa, KappaMax: kappaMax}
}
