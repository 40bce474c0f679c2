package action

import "errors"

// Domain errors for the action library.
var (
	// ErrInvalidAction indicates an action definition cannot be planned with.
	ErrInvalidAction = errors.New("invalid action")

	// ErrNoEffect indicates an operation needs an effect template the action lacks.
	ErrNoEffect = errors.New("action has no effect")
)
