package smc

// InvalidGainsError reports a gain vector that fails a variant's
// GainSpec (box bounds or algorithmic validator). It is one of the
// error kinds that may cross the core boundary (spec §6); the factory
// package re-exports it rather than duplicating its shape.
type InvalidGainsError struct {
	Kind   string
	Reason string
}

func NewInvalidGainsError(kind, reason string) *InvalidGainsError {
	return &InvalidGainsError{Kind: kind, Reason: reason}
}

func (e *InvalidGainsError) Error() string {
	return "smc: invalid gains for " + e.Kind + ": " + e.Reason
}

// UnknownParamError reports an unrecognized name passed to SetParam.
type UnknownParamError struct {
	Kind string
	Name string
}

func NewUnknownParamError(kind, name string) *UnknownParamError {
	return &UnknownParamError{Kind: kind, Name: name}
}

func (e *UnknownParamError) Error() string {
	return "smc: unknown parameter " + e.Name + " for " + e.Kind
}
