package mhd

import (
	"errors"
	"fmt"
)

// Domain errors for MHD model operations.
var (
	// ErrConfiguration indicates a missing or invalid model option.
	ErrConfiguration = errors.New("mhd: configuration error")

	// ErrInconsistentField indicates a field that does not cover the mesh.
	ErrInconsistentField = errors.New("mhd: field does not match mesh")

	// ErrNonFinite indicates a computed field holding NaN or Inf.
	ErrNonFinite = errors.New("mhd: non-finite value in computed field")

	// ErrUnknownModel indicates an mhdModel name with no registered constructor.
	ErrUnknownModel = errors.New("mhd: unknown model")
)

// ConfigurationError names the offending option. It matches both
// ErrConfiguration and the underlying lookup error.
type ConfigurationError struct {
	Option  string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("%v: option %q", ErrConfiguration, e.Option)
	}
	return fmt.Sprintf("%v: option %q: %v", ErrConfiguration, e.Option, e.Wrapped)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Wrapped}
}

// InconsistentFieldError reports a field whose length differs from the
// mesh cell count.
type InconsistentFieldError struct {
	Field string
	Want  int
	Got   int
}

func (e *InconsistentFieldError) Error() string {
	return fmt.Sprintf("%v: %s has %d cells, mesh has %d", ErrInconsistentField, e.Field, e.Got, e.Want)
}

func (e *InconsistentFieldError) Unwrap() error {
	return ErrInconsistentField
}

// CheckCells returns an *InconsistentFieldError when n != want.
func CheckCells(name string, n, want int) error {
	if n != want {
		return &InconsistentFieldError{Field: name, Want: want, Got: n}
	}
	return nil
}
