package plan

import (
	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/world"
)

// Node is a vertex of the planning graph: either the initial state or the
// realized effect that produced a state.
type Node struct {
	initial bool
	state   world.State
	effect  action.Effect
}

// Initial wraps the start state.
func Initial(s world.State) Node {
	return Node{initial: true, state: s}
}

// Applied wraps a realized effect.
func Applied(e action.Effect) Node {
	return Node{effect: e}
}

// IsInitial reports whether the node is the start state.
func (n Node) IsInitial() bool {
	return n.initial
}

// State returns the state at this node.
func (n Node) State() world.State {
	if n.initial {
		return n.state
	}
	return n.effect.State
}

// Effect returns the realized effect of an applied node.
func (n Node) Effect() (action.Effect, bool) {
	if n.initial {
		return action.Effect{}, false
	}
	return n.effect, true
}

// Key is the search identity of the node.
func (n Node) Key() string {
	return n.State().Fingerprint()
}

// String renders the node for traces.
func (n Node) String() string {
	if n.initial {
		return "initial " + n.state.String()
	}
	return n.effect.String()
}
