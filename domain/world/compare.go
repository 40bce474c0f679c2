package world

import (
	"fmt"
	"strings"
)

// Operator is a comparison operator.
type Operator uint8

// Comparison operators.
const (
	OpEquals Operator = iota
	OpNotEquals
	OpGreaterThan
	OpGreaterThanOrEquals
	OpLessThan
	OpLessThanOrEquals
)

// String returns the operator symbol.
func (o Operator) String() string {
	switch o {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEquals:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessThanOrEquals:
		return "<="
	default:
		return "?"
	}
}

// IsOrdering reports whether the operator needs ordered operands.
func (o Operator) IsOrdering() bool {
	switch o {
	case OpGreaterThan, OpGreaterThanOrEquals, OpLessThan, OpLessThanOrEquals:
		return true
	default:
		return false
	}
}

// ParseOperator parses a symbol ("==", ">=") or a name ("greater_than_or_equals").
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "==", "=", "eq", "equals":
		return OpEquals, nil
	case "!=", "ne", "not_equals":
		return OpNotEquals, nil
	case ">", "gt", "greater_than":
		return OpGreaterThan, nil
	case ">=", "gte", "greater_than_or_equals":
		return OpGreaterThanOrEquals, nil
	case "<", "lt", "less_than":
		return OpLessThan, nil
	case "<=", "lte", "less_than_or_equals":
		return OpLessThanOrEquals, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
}

// Comparison pairs an operator with the expected value.
type Comparison struct {
	Op    Operator
	Value Value
}

// Equals expects the actual value to equal v.
func Equals(v Value) Comparison { return Comparison{Op: OpEquals, Value: v} }

// NotEquals expects the actual value to differ from v.
func NotEquals(v Value) Comparison { return Comparison{Op: OpNotEquals, Value: v} }

// GreaterThan expects the actual value to be greater than v.
func GreaterThan(v Value) Comparison { return Comparison{Op: OpGreaterThan, Value: v} }

// GreaterThanOrEquals expects the actual value to be at least v.
func GreaterThanOrEquals(v Value) Comparison {
	return Comparison{Op: OpGreaterThanOrEquals, Value: v}
}

// LessThan expects the actual value to be less than v.
func LessThan(v Value) Comparison { return Comparison{Op: OpLessThan, Value: v} }

// LessThanOrEquals expects the actual value to be at most v.
func LessThanOrEquals(v Value) Comparison {
	return Comparison{Op: OpLessThanOrEquals, Value: v}
}

// String renders the comparison, e.g. ">= 10".
func (c Comparison) String() string {
	return c.Op.String() + " " + c.Value.String()
}

// Evaluate applies the comparison to an actual value. Equality across kinds is
// structural; ordering across kinds, or of bool and enum values, is a type mismatch.
// No ordering holds against a NaN.
func Evaluate(c Comparison, actual Value) (bool, error) {
	switch c.Op {
	case OpEquals:
		return actual.Equal(c.Value), nil
	case OpNotEquals:
		return !actual.Equal(c.Value), nil
	}

	order, ordered, err := actual.compare(c.Value)
	if err != nil {
		return false, err
	}
	if !ordered {
		return false, nil
	}

	switch c.Op {
	case OpGreaterThan:
		return order > 0, nil
	case OpGreaterThanOrEquals:
		return order >= 0, nil
	case OpLessThan:
		return order < 0, nil
	case OpLessThanOrEquals:
		return order <= 0, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownOperator, c.Op)
	}
}

// Check looks up fact in s and evaluates c against it. Missing facts and type
// mismatches are reported as *EvalError.
func Check(s State, fact string, c Comparison) (bool, error) {
	actual, ok := s.Get(fact)
	if !ok {
		return false, evalError("compare "+c.Op.String(), fact, ErrMissingFact)
	}
	ok, err := Evaluate(c, actual)
	if err != nil {
		return false, evalError("compare "+c.Op.String(), fact, err)
	}
	return ok, nil
}
