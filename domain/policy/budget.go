// Package policy provides the limits that bound a planning search.
package policy

import (
	"fmt"
	"sort"
	"sync"
)

// Resources metered during search.
const (
	// Expansions counts nodes popped from the open set and expanded.
	Expansions = "expansions"
	// Generated counts successor nodes produced.
	Generated = "generated"
)

// Budget meters named resources against optional limits. A resource without
// a limit is counted but never refused. Safe for concurrent use. A budget
// made with Child also draws from its parent, so one parent can cap the
// searches of a batch while each child caps a single search.
type Budget struct {
	mu       sync.Mutex
	parent   *Budget
	limits   map[string]int
	consumed map[string]int
}

// BudgetSnapshot is an immutable view of a budget.
type BudgetSnapshot struct {
	Limits    map[string]int `json:"limits"`
	Consumed  map[string]int `json:"consumed"`
	Remaining map[string]int `json:"remaining"`
}

// NewBudget creates a budget with the given limits. Non-positive limits
// are ignored.
func NewBudget(limits map[string]int) *Budget {
	b := &Budget{
		limits:   make(map[string]int, len(limits)),
		consumed: make(map[string]int),
	}
	for name, limit := range limits {
		if limit > 0 {
			b.limits[name] = limit
		}
	}
	return b
}

// UnlimitedBudget creates a budget that only counts.
func UnlimitedBudget() *Budget {
	return NewBudget(nil)
}

// SearchLimits maps per-search limits to budget limits; values <= 0 mean
// unlimited.
func SearchLimits(maxExpansions, maxGenerated int) map[string]int {
	return map[string]int{Expansions: maxExpansions, Generated: maxGenerated}
}

// Child creates a budget with its own limits whose consumption is also
// charged to b.
func (b *Budget) Child(limits map[string]int) *Budget {
	child := NewBudget(limits)
	child.parent = b
	return child
}

// Consume records amount of name, or returns ErrBudgetExceeded without
// recording anything when this budget or an ancestor would pass its limit.
func (b *Budget) Consume(name string, amount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit, ok := b.limits[name]; ok && b.consumed[name]+amount > limit {
		return fmt.Errorf("%w: %s limit %d", ErrBudgetExceeded, name, limit)
	}
	if b.parent != nil {
		if err := b.parent.Consume(name, amount); err != nil {
			return err
		}
	}
	b.consumed[name] += amount
	return nil
}

// Snapshot returns a copy of the counters of this budget, without its parent.
func (b *Budget) Snapshot() BudgetSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := BudgetSnapshot{
		Limits:    make(map[string]int, len(b.limits)),
		Consumed:  make(map[string]int, len(b.consumed)),
		Remaining: make(map[string]int, len(b.limits)),
	}
	for name, used := range b.consumed {
		snap.Consumed[name] = used
	}
	for name, limit := range b.limits {
		snap.Limits[name] = limit
		snap.Remaining[name] = limit - b.consumed[name]
	}
	return snap
}

// Exhausted returns the sorted names of resources at or past their limit.
func (s BudgetSnapshot) Exhausted() []string {
	var names []string
	for name, left := range s.Remaining {
		if left <= 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
