package world

import (
	"errors"
	"fmt"
)

// Domain errors for fact evaluation.
var (
	// ErrMissingFact indicates a fact name is absent from the state.
	ErrMissingFact = errors.New("missing fact")

	// ErrTypeMismatch indicates an operation was applied to an incompatible value kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOverflow indicates integer arithmetic left the int64 range.
	ErrOverflow = errors.New("integer overflow")

	// ErrUnsupportedValue indicates a Go value cannot be represented as a Value.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownOperator indicates a comparison operator could not be parsed.
	ErrUnknownOperator = errors.New("unknown comparison operator")

	// ErrUnknownMutator indicates a mutator kind could not be parsed.
	ErrUnknownMutator = errors.New("unknown mutator")
)

// EvalError describes a failed evaluation against a specific fact.
type EvalError struct {
	// Op is the operation being evaluated, e.g. "compare >=" or "increment".
	Op string
	// Fact is the offending fact name.
	Fact string
	// Err is the underlying cause (ErrMissingFact, ErrTypeMismatch or ErrOverflow).
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Fact, e.Err)
}

// Unwrap returns the underlying cause.
func (e *EvalError) Unwrap() error {
	return e.Err
}

func evalError(op, fact string, err error) error {
	return &EvalError{Op: op, Fact: fact, Err: err}
}
