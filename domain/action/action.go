// Package action defines plannable actions: preconditions that gate them and
// the single costed effect they produce.
package action

import (
	"fmt"

	"github.com/felixgeelhaar/goap/domain/world"
)

// DynamicFunc derives a comparison from the state a precondition is checked
// against. It must be pure and safe for concurrent use.
type DynamicFunc func(world.State) (world.Comparison, error)

// Precondition is either a static (fact, comparison) pair or a dynamic pair
// whose comparison is computed per state.
type Precondition struct {
	Fact       string
	Comparison world.Comparison
	Dynamic    DynamicFunc
}

// IsDynamic reports whether the comparison is computed per state.
func (p Precondition) IsDynamic() bool {
	return p.Dynamic != nil
}

// Condition is a materialized precondition.
type Condition struct {
	Fact       string
	Comparison world.Comparison
}

// String renders the condition, e.g. "energy >= 10".
func (c Condition) String() string {
	return c.Fact + " " + c.Comparison.String()
}

// Action is something an agent can do. It is immutable once built; builder
// methods return modified copies.
type Action struct {
	// Key identifies the action, e.g. "eat".
	Key string

	preconditions []Precondition
	effect        *Effect
}

// New creates an action with no preconditions and no effect.
func New(key string) Action {
	return Action{Key: key}
}

// WithPrecondition adds a static precondition.
func (a Action) WithPrecondition(fact string, c world.Comparison) Action {
	a.preconditions = append(a.clonePreconditions(), Precondition{Fact: fact, Comparison: c})
	return a
}

// WithDynamicPrecondition adds a precondition whose comparison is derived from
// the current state.
func (a Action) WithDynamicPrecondition(fact string, fn DynamicFunc) Action {
	a.preconditions = append(a.clonePreconditions(), Precondition{Fact: fact, Dynamic: fn})
	return a
}

// WithEffect replaces the effect template. The effect is rekeyed to the action.
func (a Action) WithEffect(e Effect) Action {
	e.Action = a.Key
	e.Mutators = cloneMutators(e.Mutators)
	e.State = world.State{}
	a.effect = &e
	return a
}

// WithMutator appends m to the effect template, creating a zero-cost template
// on first use.
func (a Action) WithMutator(m world.Mutator) Action {
	e := NewEffect(a.Key)
	if a.effect != nil {
		e = *a.effect
	}
	e = e.WithMutator(m)
	a.effect = &e
	return a
}

// WithCost sets the cost of the effect template, creating an empty one if needed.
func (a Action) WithCost(cost int) Action {
	e := NewEffect(a.Key)
	if a.effect != nil {
		e = *a.effect
	}
	e.Cost = cost
	a.effect = &e
	return a
}

// Preconditions returns a copy of the declared preconditions.
func (a Action) Preconditions() []Precondition {
	return a.clonePreconditions()
}

// Effect returns the effect template, if any.
func (a Action) Effect() (Effect, bool) {
	if a.effect == nil {
		return Effect{}, false
	}
	e := *a.effect
	e.Mutators = cloneMutators(e.Mutators)
	return e, true
}

// Cost returns the template cost, or 0 without an effect.
func (a Action) Cost() int {
	if a.effect == nil {
		return 0
	}
	return a.effect.Cost
}

// Conditions materializes the preconditions against state: static pairs are
// returned verbatim, dynamic pairs are computed from state.
func (a Action) Conditions(state world.State) ([]Condition, error) {
	out := make([]Condition, 0, len(a.preconditions))
	for _, p := range a.preconditions {
		if !p.IsDynamic() {
			out = append(out, Condition{Fact: p.Fact, Comparison: p.Comparison})
			continue
		}
		c, err := p.Dynamic(state)
		if err != nil {
			return nil, fmt.Errorf("action %q: precondition %q: %w", a.Key, p.Fact, err)
		}
		out = append(out, Condition{Fact: p.Fact, Comparison: c})
	}
	return out, nil
}

// Satisfied reports whether every materialized condition holds in state.
// A missing fact is an error, never a vacuous pass.
func (a Action) Satisfied(state world.State) (bool, error) {
	conds, err := a.Conditions(state)
	if err != nil {
		return false, err
	}
	for _, c := range conds {
		ok, err := world.Check(state, c.Fact, c.Comparison)
		if err != nil {
			return false, fmt.Errorf("action %q: %w", a.Key, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Equal compares key, static preconditions and effect. Dynamic preconditions
// compare by fact name only since functions have no identity. Static and
// dynamic preconditions are compared as separate lists, so how the two kinds
// interleave does not matter.
func (a Action) Equal(other Action) bool {
	if a.Key != other.Key {
		return false
	}
	static, dynamic := a.partition()
	otherStatic, otherDynamic := other.partition()
	if len(static) != len(otherStatic) || len(dynamic) != len(otherDynamic) {
		return false
	}
	for i, p := range static {
		o := otherStatic[i]
		if p.Fact != o.Fact || p.Comparison.Op != o.Comparison.Op || !p.Comparison.Value.Equal(o.Comparison.Value) {
			return false
		}
	}
	for i, fact := range dynamic {
		if fact != otherDynamic[i] {
			return false
		}
	}
	switch {
	case a.effect == nil && other.effect == nil:
		return true
	case a.effect == nil || other.effect == nil:
		return false
	default:
		return a.effect.Equal(*other.effect)
	}
}

// partition splits the preconditions into static pairs and dynamic fact names.
func (a Action) partition() (static []Precondition, dynamic []string) {
	for _, p := range a.preconditions {
		if p.IsDynamic() {
			dynamic = append(dynamic, p.Fact)
		} else {
			static = append(static, p)
		}
	}
	return static, dynamic
}

// Validate checks the action can take part in planning.
func (a Action) Validate() error {
	if a.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidAction)
	}
	for i, p := range a.preconditions {
		if p.Fact == "" {
			return fmt.Errorf("%w: %q: precondition %d has no fact", ErrInvalidAction, a.Key, i)
		}
	}
	if a.effect == nil {
		return nil
	}
	if a.effect.Cost < 0 {
		return fmt.Errorf("%w: %q: negative cost %d", ErrInvalidAction, a.Key, a.effect.Cost)
	}
	for i, m := range a.effect.Mutators {
		if m.Fact == "" {
			return fmt.Errorf("%w: %q: mutator %d has no fact", ErrInvalidAction, a.Key, i)
		}
	}
	return nil
}

// String returns the action key.
func (a Action) String() string {
	return a.Key
}

func (a Action) clonePreconditions() []Precondition {
	if len(a.preconditions) == 0 {
		return nil
	}
	out := make([]Precondition, len(a.preconditions))
	copy(out, a.preconditions)
	return out
}
