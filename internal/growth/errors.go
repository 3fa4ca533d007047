package growth

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation and steady-state solving.
var (
	// ErrDomain indicates a parameter or intermediate value outside its documented domain.
	ErrDomain = errors.New("growth: value outside model domain")

	// ErrConvergence indicates numeric root-finding exhausted its iteration budget.
	ErrConvergence = errors.New("growth: root-finding did not converge")

	// ErrUnknownParam indicates a parameter name that is not part of the parameter set.
	ErrUnknownParam = errors.New("growth: unknown parameter")

	// ErrUnknownVariant indicates a model variant name that is not recognised.
	ErrUnknownVariant = errors.New("growth: unknown model variant")
)

// DomainError wraps ErrDomain with the offending field and value.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("growth: %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// ConvergenceError wraps ErrConvergence with the last iterate and its residual.
type ConvergenceError struct {
	Iterations int
	Last       float64
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("growth: no convergence after %d iterations (last k=%g, residual=%g)",
		e.Iterations, e.Last, e.Residual)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}

func domainErr(field string, value float64, reason string) error {
	return &DomainError{Field: field, Value: value, Reason: reason}
}
