package plan

import (
	"fmt"
	"strings"
)

// Strategy is the direction of search.
type Strategy uint8

// Strategies.
const (
	// StartToGoal searches forward from the start state.
	StartToGoal Strategy = iota
	// GoalToStart is reserved for regressive search.
	GoalToStart
)

// DefaultStrategy is used when none is given.
const DefaultStrategy = StartToGoal

// String returns the snake_case name.
func (s Strategy) String() string {
	switch s {
	case StartToGoal:
		return "start_to_goal"
	case GoalToStart:
		return "goal_to_start"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name. An empty name yields DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "start_to_goal", "forward":
		return StartToGoal, nil
	case "goal_to_start", "backward":
		return GoalToStart, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
