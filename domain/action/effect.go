package action

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/goap/domain/world"
)

// Effect is the costed outcome of an action. A template carries an empty
// State; Realize fills it in for a concrete predecessor.
type Effect struct {
	// Action is the key of the action that owns this effect.
	Action string
	// Mutators are applied in order.
	Mutators []world.Mutator
	// Cost is the non-negative step cost.
	Cost int
	// State is the state after applying Mutators. Empty on templates.
	State world.State
}

// NewEffect creates an empty template for the named action.
func NewEffect(actionKey string) Effect {
	return Effect{Action: actionKey}
}

// WithMutator returns a copy of the effect with m appended.
func (e Effect) WithMutator(m world.Mutator) Effect {
	e.Mutators = append(cloneMutators(e.Mutators), m)
	return e
}

// WithCost returns a copy of the effect with the given cost.
func (e Effect) WithCost(cost int) Effect {
	e.Cost = cost
	return e
}

// Realize applies the mutators to from and returns the realized effect.
func (e Effect) Realize(from world.State) (Effect, error) {
	next, err := world.ApplyAll(from, e.Mutators)
	if err != nil {
		return Effect{}, err
	}
	return Effect{
		Action:   e.Action,
		Mutators: cloneMutators(e.Mutators),
		Cost:     e.Cost,
		State:    next,
	}, nil
}

// Equal compares action key, mutators and cost. Realized states are ignored.
func (e Effect) Equal(other Effect) bool {
	if e.Action != other.Action || e.Cost != other.Cost || len(e.Mutators) != len(other.Mutators) {
		return false
	}
	for i, m := range e.Mutators {
		o := other.Mutators[i]
		if m.Kind != o.Kind || m.Fact != o.Fact || !m.Value.Equal(o.Value) {
			return false
		}
	}
	return true
}

// String renders the effect, e.g. "eat [hunger -= 10] cost=1".
func (e Effect) String() string {
	parts := make([]string, len(e.Mutators))
	for i, m := range e.Mutators {
		parts[i] = m.String()
	}
	return e.Action + " [" + strings.Join(parts, ", ") + "] cost=" + strconv.Itoa(e.Cost)
}

func cloneMutators(ms []world.Mutator) []world.Mutator {
	if ms == nil {
		return nil
	}
	out := make([]world.Mutator, len(ms))
	copy(out, ms)
	return out
}
