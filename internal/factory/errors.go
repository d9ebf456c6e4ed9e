package factory

import "github.com/san-kum/dipsmc-pso/internal/smc"

// InvalidGainsError re-exports smc's gain-validation error rather than
// duplicating its shape, per SPEC_FULL.md's ambient-errors convention.
type InvalidGainsError = smc.InvalidGainsError

// UnknownControllerError reports a kind with no registered constructor.
type UnknownControllerError struct {
	Kind string
}

func NewUnknownControllerError(kind string) *UnknownControllerError {
	return &UnknownControllerError{Kind: kind}
}

func (e *UnknownControllerError) Error() string {
	return "factory: unknown controller kind " + e.Kind
}

// DuplicateKindError reports a second Register call for a kind already
// present.
type DuplicateKindError struct {
	Kind string
}

func (e *DuplicateKindError) Error() string {
	return "factory: kind already registered: " + e.Kind
}

// ConfigValidationError reports an invalid field in a CreateOptions or
// controller-options override.
type ConfigValidationError struct {
	Field  string
	Reason string
}

func (e *ConfigValidationError) Error() string {
	return "factory: invalid config field " + e.Field + ": " + e.Reason
}
