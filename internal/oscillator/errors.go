package oscillator

import (
	"errors"
	"fmt"
)

// ConfigError represents a caller error detected while constructing an engine
// or supplying step arguments. These are contract violations, not numeric
// degeneracies: degenerate numeric cases (empty coherence, zero-width grids
// of visited states) are resolved by definition elsewhere and never raise.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Field names the offending argument.
	Field string

	// Message is a human-readable description.
	Message string
}

// ConfigErrorCode categorizes caller errors.
type ConfigErrorCode string

const (
	// ErrCodeBadGrid indicates non-positive band or neuron counts.
	ErrCodeBadGrid ConfigErrorCode = "BAD_GRID"

	// ErrCodeBadBand indicates a band descriptor with an out-of-range decay.
	ErrCodeBadBand ConfigErrorCode = "BAD_BAND"

	// ErrCodeBadEnergy indicates a negative input energy.
	ErrCodeBadEnergy ConfigErrorCode = "BAD_ENERGY"

	// ErrCodeBadCoupling indicates a forced coupling outside [CouplingMin, CouplingMax].
	ErrCodeBadCoupling ConfigErrorCode = "BAD_COUPLING"

	// ErrCodeBadPolicy indicates an unset or unknown coupling policy.
	ErrCodeBadPolicy ConfigErrorCode = "BAD_POLICY"

	// ErrCodeBadPrecision indicates a precision outside [1, MaxPrecisionBits].
	ErrCodeBadPrecision ConfigErrorCode = "BAD_PRECISION"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func newConfigError(code ConfigErrorCode, field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
