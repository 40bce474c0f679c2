// Package config provides domain models for planning scenarios.
package config

import (
	"encoding/json"
	"time"
)

// ScenarioConfig describes a complete planning problem: the starting state,
// the action library, the candidate goals and how to search.
type ScenarioConfig struct {
	// Name is a human-readable name for this scenario.
	Name string `json:"name" yaml:"name"`
	// Version is the scenario schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the scenario.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Planner contains search settings.
	Planner PlannerSettings `json:"planner,omitempty" yaml:"planner,omitempty"`
	// Batch contains settings for planning several goals at once.
	Batch BatchSettings `json:"batch,omitempty" yaml:"batch,omitempty"`
	// State maps fact names to scalar values.
	State map[string]any `json:"state" yaml:"state"`
	// Actions is the action library, in priority order for ties.
	Actions []ActionConfig `json:"actions" yaml:"actions"`
	// Goals are the candidate goals.
	Goals []GoalConfig `json:"goals" yaml:"goals"`
}

// PlannerSettings configures the search.
type PlannerSettings struct {
	// MaxExpansions bounds expanded nodes per plan (0 = unlimited).
	MaxExpansions int `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
	// MaxGenerated bounds generated successor nodes per plan (0 = unlimited).
	MaxGenerated int `json:"max_generated,omitempty" yaml:"max_generated,omitempty"`
	// Timeout bounds wall-clock time per plan.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Strategy is the search direction (start_to_goal, goal_to_start).
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	// Heuristic selects the estimate (relaxed, goal_distance, zero).
	Heuristic string `json:"heuristic,omitempty" yaml:"heuristic,omitempty"`
}

// BatchSettings configures concurrent planning.
type BatchSettings struct {
	// MaxConcurrent limits concurrent searches.
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
	// MaxExpansions bounds expanded nodes across every plan of the batch (0 = unlimited).
	MaxExpansions int `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
}

// ActionConfig defines one action.
type ActionConfig struct {
	// Key identifies the action.
	Key string `json:"key" yaml:"key"`
	// Cost is the non-negative cost of applying the action.
	Cost int `json:"cost,omitempty" yaml:"cost,omitempty"`
	// Preconditions must all hold before the action applies.
	Preconditions []ConditionConfig `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	// Mutators are applied in order.
	Mutators []MutatorConfig `json:"mutators" yaml:"mutators"`
}

// ConditionConfig compares a fact against a literal value or, for action
// preconditions, against the current value of another fact.
type ConditionConfig struct {
	// Fact is the fact being tested.
	Fact string `json:"fact" yaml:"fact"`
	// Op is the comparison operator (==, !=, >, >=, <, <=).
	Op string `json:"op" yaml:"op"`
	// Value is the literal threshold.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Ref names a fact whose current value is the threshold.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// IsDynamic reports whether the threshold is read from another fact.
func (c ConditionConfig) IsDynamic() bool {
	return c.Ref != ""
}

// MutatorConfig defines one state change.
type MutatorConfig struct {
	// Op is set, increment or decrement.
	Op string `json:"op" yaml:"op"`
	// Fact is the fact being changed.
	Fact string `json:"fact" yaml:"fact"`
	// Value is the new value or the delta.
	Value any `json:"value" yaml:"value"`
}

// GoalConfig defines one goal.
type GoalConfig struct {
	// Name identifies the goal.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Priority ranks goals; higher wins.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Requirements must all hold in the final state.
	Requirements []ConditionConfig `json:"requirements" yaml:"requirements"`
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
