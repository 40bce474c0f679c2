package plan

import "errors"

// Domain errors for plans.
var (
	// ErrStrategyNotImplemented indicates a reserved search strategy was requested.
	ErrStrategyNotImplemented = errors.New("planning strategy not implemented")

	// ErrUnknownStrategy indicates a strategy name could not be parsed.
	ErrUnknownStrategy = errors.New("unknown planning strategy")

	// ErrEmptyPlan indicates a plan has no initial node.
	ErrEmptyPlan = errors.New("plan has no nodes")
)
