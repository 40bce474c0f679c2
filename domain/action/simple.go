package action

import "github.com/felixgeelhaar/goap/domain/world"

// Assignment is a fact/value pair for SimpleMulti.
type Assignment struct {
	Fact  string
	Value world.Value
}

// Simple creates a cost-1 action without preconditions that sets fact to v.
func Simple(name, fact string, v world.Value) Action {
	return SimpleMulti(name, []Assignment{{Fact: fact, Value: v}})
}

// SimpleMulti creates a cost-1 action without preconditions that applies each
// assignment in order.
func SimpleMulti(name string, assignments []Assignment) Action {
	e := NewEffect(name).WithCost(1)
	for _, as := range assignments {
		e = e.WithMutator(world.Set(as.Fact, as.Value))
	}
	return New(name).WithEffect(e)
}

// SimpleIncrement creates a cost-1 action that adds delta to fact.
func SimpleIncrement(name, fact string, delta world.Value) Action {
	return New(name).WithEffect(NewEffect(name).WithCost(1).WithMutator(world.Increment(fact, delta)))
}

// SimpleDecrement creates a cost-1 action that subtracts delta from fact.
func SimpleDecrement(name, fact string, delta world.Value) Action {
	return New(name).WithEffect(NewEffect(name).WithCost(1).WithMutator(world.Decrement(fact, delta)))
}
