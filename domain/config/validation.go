package config

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/world"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the JSON path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Paths returns the path of every error, in order.
func (e ValidationErrors) Paths() []string {
	out := make([]string, len(e))
	for i, err := range e {
		out[i] = err.Path
	}
	return out
}

// Validator validates scenario configuration.
type Validator struct {
	errors  ValidationErrors
	defined map[string]bool
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the scenario and returns any errors.
func (v *Validator) Validate(config *ScenarioConfig) ValidationErrors {
	v.errors = nil
	v.defined = make(map[string]bool)

	v.validateRequired(config)
	v.validatePlanner(config)
	v.validateState(config)
	v.validateActions(config)
	v.validateGoals(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *ScenarioConfig) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validatePlanner(config *ScenarioConfig) {
	p := config.Planner
	if p.MaxExpansions < 0 {
		v.addError("planner.max_expansions", "max_expansions must be non-negative")
	}
	if p.MaxGenerated < 0 {
		v.addError("planner.max_generated", "max_generated must be non-negative")
	}
	if p.Timeout < 0 {
		v.addError("planner.timeout", "timeout must be non-negative")
	}
	if _, err := plan.ParseStrategy(p.Strategy); err != nil {
		v.addError("planner.strategy", fmt.Sprintf("invalid strategy: %s", p.Strategy))
	}
	switch p.Heuristic {
	case "", HeuristicRelaxed, HeuristicGoalDistance, HeuristicZero:
	default:
		v.addError("planner.heuristic", fmt.Sprintf("invalid heuristic: %s", p.Heuristic))
	}
	if config.Batch.MaxConcurrent < 0 {
		v.addError("batch.max_concurrent", "max_concurrent must be non-negative")
	}
	if config.Batch.MaxExpansions < 0 {
		v.addError("batch.max_expansions", "max_expansions must be non-negative")
	}
}

func (v *Validator) validateState(config *ScenarioConfig) {
	for fact, raw := range config.State {
		v.defined[fact] = true
		if _, err := Scalar(raw); err != nil {
			v.addError("state."+fact, err.Error())
		}
	}
	// Facts introduced by a set are defined from then on.
	for _, a := range config.Actions {
		for _, m := range a.Mutators {
			if kind, err := world.ParseMutatorKind(m.Op); err == nil && kind == world.MutateSet && m.Fact != "" {
				v.defined[m.Fact] = true
			}
		}
	}
}

func (v *Validator) validateActions(config *ScenarioConfig) {
	seen := make(map[string]bool)
	for i, a := range config.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		if a.Key == "" {
			v.addError(path+".key", "action key is required")
		} else if seen[a.Key] {
			v.addError(path+".key", fmt.Sprintf("duplicate action key: %s", a.Key))
		}
		seen[a.Key] = true

		if a.Cost < 0 {
			v.addError(path+".cost", "cost must be non-negative")
		}
		for j, c := range a.Preconditions {
			v.validateCondition(fmt.Sprintf("%s.preconditions[%d]", path, j), c, true)
		}
		if len(a.Mutators) == 0 {
			v.addError(path+".mutators", "at least one mutator is required")
		}
		for j, m := range a.Mutators {
			v.validateMutator(fmt.Sprintf("%s.mutators[%d]", path, j), m)
		}
	}
}

func (v *Validator) validateCondition(path string, c ConditionConfig, allowRef bool) {
	if c.Fact == "" {
		v.addError(path+".fact", "fact is required")
	} else if !v.defined[c.Fact] {
		v.addError(path+".fact", fmt.Sprintf("fact is never defined: %s", c.Fact))
	}
	if _, err := world.ParseOperator(c.Op); err != nil {
		v.addError(path+".op", fmt.Sprintf("invalid operator: %s", c.Op))
	}

	switch {
	case c.IsDynamic() && !allowRef:
		v.addError(path+".ref", "ref is only allowed in preconditions")
	case c.IsDynamic() && c.Value != nil:
		v.addError(path, "value and ref are mutually exclusive")
	case c.IsDynamic():
		if !v.defined[c.Ref] {
			v.addError(path+".ref", fmt.Sprintf("fact is never defined: %s", c.Ref))
		}
	case c.Value == nil:
		v.addError(path+".value", "value is required")
	default:
		if _, err := Scalar(c.Value); err != nil {
			v.addError(path+".value", err.Error())
		}
	}
}

func (v *Validator) validateMutator(path string, m MutatorConfig) {
	kind, err := world.ParseMutatorKind(m.Op)
	if err != nil {
		v.addError(path+".op", fmt.Sprintf("invalid mutator: %s", m.Op))
	}
	if m.Fact == "" {
		v.addError(path+".fact", "fact is required")
	} else if !v.defined[m.Fact] {
		v.addError(path+".fact", fmt.Sprintf("fact is never defined: %s", m.Fact))
	}
	if m.Value == nil {
		v.addError(path+".value", "value is required")
		return
	}
	value, err2 := Scalar(m.Value)
	if err2 != nil {
		v.addError(path+".value", err2.Error())
		return
	}
	if err == nil && kind != world.MutateSet && !value.IsNumeric() {
		v.addError(path+".value", fmt.Sprintf("%s needs a numeric value", kind))
	}
}

func (v *Validator) validateGoals(config *ScenarioConfig) {
	if len(config.Goals) == 0 {
		v.addError("goals", "at least one goal is required")
	}
	seen := make(map[string]bool)
	for i, g := range config.Goals {
		path := fmt.Sprintf("goals[%d]", i)
		if g.Name != "" {
			if seen[g.Name] {
				v.addError(path+".name", fmt.Sprintf("duplicate goal name: %s", g.Name))
			}
			seen[g.Name] = true
		}
		if len(g.Requirements) == 0 {
			v.addError(path+".requirements", "at least one requirement is required")
		}
		facts := make(map[string]bool)
		for j, r := range g.Requirements {
			rpath := fmt.Sprintf("%s.requirements[%d]", path, j)
			if r.Fact != "" && facts[r.Fact] {
				v.addError(rpath+".fact", fmt.Sprintf("duplicate requirement on fact: %s", r.Fact))
			}
			facts[r.Fact] = true
			v.validateCondition(rpath, r, false)
		}
	}
}
