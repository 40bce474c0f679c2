package logging

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// PlanID adds a plan ID field.
func PlanID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("plan_id", id)
	}
}

// Strategy adds the search strategy.
func Strategy(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("strategy", name)
	}
}

// ActionKey adds an action key field.
func ActionKey(key string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("action", key)
	}
}

// Actions adds the size of the action library.
func Actions(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("actions", n)
	}
}

// Fact adds a fact name field.
func Fact(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("fact", name)
	}
}

// Cost adds a plan cost field.
func Cost(cost int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("cost", cost)
	}
}

// Expanded adds the number of expanded search nodes.
func Expanded(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("expanded", n)
	}
}

// PlanLength adds the number of steps in a plan.
func PlanLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("steps", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Goal adds a goal field.
func Goal(goal string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("goal", goal)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an int field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}

// Exhausted adds the budget resources that ran out, if any.
func Exhausted(resources []string) Field {
	return func(e *bolt.Event) *bolt.Event {
		if len(resources) == 0 {
			return e
		}
		return e.Str("exhausted", strings.Join(resources, ","))
	}
}
