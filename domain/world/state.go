package world

import (
	"sort"
	"strconv"
	"strings"
)

// State is a snapshot of facts. It has value semantics: the zero value is an
// empty state, and every derived state is an independent copy.
type State struct {
	facts map[string]Value
}

// NewState creates an empty state.
func NewState() State {
	return State{}
}

// StateFrom builds a state from plain Go scalars.
func StateFrom(facts map[string]any) (State, error) {
	s := State{facts: make(map[string]Value, len(facts))}
	for k, raw := range facts {
		v, err := FromAny(raw)
		if err != nil {
			return State{}, evalError("convert", k, err)
		}
		s.facts[k] = v
	}
	return s, nil
}

// With returns a copy of the state with key set to v.
func (s State) With(key string, v Value) State {
	next := s.Clone()
	next.set(key, v)
	return next
}

// Get returns the value for key.
func (s State) Get(key string) (Value, bool) {
	v, ok := s.facts[key]
	return v, ok
}

// Lookup returns the value for key or an *EvalError wrapping ErrMissingFact.
func (s State) Lookup(key string) (Value, error) {
	v, ok := s.facts[key]
	if !ok {
		return Value{}, evalError("lookup", key, ErrMissingFact)
	}
	return v, nil
}

// Has reports whether key is present.
func (s State) Has(key string) bool {
	_, ok := s.facts[key]
	return ok
}

// Keys returns the fact names in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of facts.
func (s State) Len() int {
	return len(s.facts)
}

// Clone returns an independent copy.
func (s State) Clone() State {
	if s.facts == nil {
		return State{}
	}
	facts := make(map[string]Value, len(s.facts))
	for k, v := range s.facts {
		facts[k] = v
	}
	return State{facts: facts}
}

// Equal reports whether both states hold the same facts with equal values.
func (s State) Equal(other State) bool {
	if len(s.facts) != len(other.facts) {
		return false
	}
	for k, v := range s.facts {
		ov, ok := other.facts[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical encoding of the state. Two states have the
// same fingerprint iff they are Equal.
func (s State) Fingerprint() string {
	var b strings.Builder
	for _, k := range s.Keys() {
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(s.facts[k].GoString()))
		b.WriteByte(';')
	}
	return b.String()
}

// ToMap returns the facts as plain Go values.
func (s State) ToMap() map[string]any {
	out := make(map[string]any, len(s.facts))
	for k, v := range s.facts {
		out[k] = v.Interface()
	}
	return out
}

// String renders the state as "{a=1, b=true}" in key order.
func (s State) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.facts[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// set mutates the receiver in place. Callers must own the map.
func (s *State) set(key string, v Value) {
	if s.facts == nil {
		s.facts = make(map[string]Value)
	}
	s.facts[key] = v
}
