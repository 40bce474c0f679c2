package world

import (
	"fmt"
	"strings"
)

// MutatorKind selects how a mutator changes a fact.
type MutatorKind uint8

// Mutator kinds.
const (
	MutateSet MutatorKind = iota
	MutateIncrement
	MutateDecrement
)

// String returns the lowercase kind name.
func (k MutatorKind) String() string {
	switch k {
	case MutateSet:
		return "set"
	case MutateIncrement:
		return "increment"
	case MutateDecrement:
		return "decrement"
	default:
		return "unknown"
	}
}

// ParseMutatorKind parses "set", "increment" or "decrement".
func ParseMutatorKind(s string) (MutatorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "set", "=":
		return MutateSet, nil
	case "increment", "inc", "+=":
		return MutateIncrement, nil
	case "decrement", "dec", "-=":
		return MutateDecrement, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMutator, s)
	}
}

// Mutator is one primitive state change.
type Mutator struct {
	Kind  MutatorKind
	Fact  string
	Value Value
}

// Set overwrites (or inserts) fact with v.
func Set(fact string, v Value) Mutator {
	return Mutator{Kind: MutateSet, Fact: fact, Value: v}
}

// Increment adds delta to an existing numeric fact.
func Increment(fact string, delta Value) Mutator {
	return Mutator{Kind: MutateIncrement, Fact: fact, Value: delta}
}

// Decrement subtracts delta from an existing numeric fact.
func Decrement(fact string, delta Value) Mutator {
	return Mutator{Kind: MutateDecrement, Fact: fact, Value: delta}
}

// Apply changes working in place.
func (m Mutator) Apply(working *State) error {
	if m.Kind == MutateSet {
		working.set(m.Fact, m.Value)
		return nil
	}

	current, ok := working.Get(m.Fact)
	if !ok {
		return evalError(m.Kind.String(), m.Fact, ErrMissingFact)
	}

	var (
		next Value
		err  error
	)
	switch m.Kind {
	case MutateIncrement:
		next, err = current.Add(m.Value)
	case MutateDecrement:
		next, err = current.Sub(m.Value)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownMutator, m.Kind)
	}
	if err != nil {
		return evalError(m.Kind.String(), m.Fact, err)
	}
	working.set(m.Fact, next)
	return nil
}

// String renders the mutator, e.g. "energy += 10".
func (m Mutator) String() string {
	switch m.Kind {
	case MutateIncrement:
		return m.Fact + " += " + m.Value.String()
	case MutateDecrement:
		return m.Fact + " -= " + m.Value.String()
	default:
		return m.Fact + " = " + m.Value.String()
	}
}

// ApplyAll clones from and applies ms left to right.
func ApplyAll(from State, ms []Mutator) (State, error) {
	next := from.Clone()
	for _, m := range ms {
		if err := m.Apply(&next); err != nil {
			return State{}, err
		}
	}
	return next, nil
}
