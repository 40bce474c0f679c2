package config

import (
	"encoding/json"
	"fmt"

	domainconfig "github.com/felixgeelhaar/goap/domain/config"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 any                    `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Definitions          map[string]*JSONSchema `json:"$defs,omitempty"`
	OneOf                []*JSONSchema          `json:"oneOf,omitempty"`
}

var operators = []string{"==", "!=", ">", ">=", "<", "<="}

// GenerateSchema generates a JSON Schema for ScenarioConfig.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/felixgeelhaar/goap/scenario.schema.json",
		Title:       "GOAP Scenario",
		Description: "A planning problem: starting state, action library and goals",
		Type:        "object",
		Required:    []string{"name", "version", "state", "actions", "goals"},
		Properties: map[string]*JSONSchema{
			"name":        {Type: "string", Description: "A human-readable name for this scenario"},
			"version":     {Type: "string", Description: "The scenario schema version", Default: "1.0"},
			"description": {Type: "string", Description: "Describes the scenario"},
			"planner":     plannerSchema(),
			"batch": {
				Type:        "object",
				Description: "Settings for planning every goal at once",
				Properties: map[string]*JSONSchema{
					"max_concurrent": {Type: "integer", Minimum: floatPtr(0), Description: "Maximum concurrent searches"},
					"max_expansions": {Type: "integer", Minimum: floatPtr(0), Description: "Maximum expanded nodes across every goal (0 = unlimited)"},
				},
			},
			"state": {
				Type:                 "object",
				Description:          "Starting facts",
				AdditionalProperties: &JSONSchema{Ref: "#/$defs/scalar"},
			},
			"actions": {
				Type:        "array",
				Description: "The action library; earlier actions win cost ties",
				Items:       &JSONSchema{Ref: "#/$defs/action"},
			},
			"goals": {
				Type:        "array",
				Description: "Candidate goals",
				MinItems:    intPtr(1),
				Items:       &JSONSchema{Ref: "#/$defs/goal"},
			},
		},
		Definitions: map[string]*JSONSchema{
			"scalar": {
				Description: "A boolean, integer, float or enum tag",
				Type:        []string{"boolean", "integer", "number", "string"},
			},
			"action":    actionSchema(),
			"condition": conditionSchema(),
			"goal":      goalSchema(),
		},
	}
}

func plannerSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Search settings",
		Properties: map[string]*JSONSchema{
			"max_expansions": {
				Type:        "integer",
				Description: "Maximum expanded nodes per plan (0 = unlimited)",
				Minimum:     floatPtr(0),
				Default:     0,
			},
			"max_generated": {
				Type:        "integer",
				Description: "Maximum generated successor nodes per plan (0 = unlimited)",
				Minimum:     floatPtr(0),
				Default:     0,
			},
			"timeout": {
				Type:        "string",
				Description: "Maximum wall-clock time per plan (e.g., 500ms, 2s)",
				Pattern:     `^[0-9]+(ns|us|µs|ms|s|m|h)$`,
			},
			"strategy": {
				Type:        "string",
				Description: "Search direction",
				Enum:        []string{"start_to_goal", "goal_to_start"},
				Default:     "start_to_goal",
			},
			"heuristic": {
				Type:        "string",
				Description: "Remaining-cost estimate",
				Enum: []string{
					domainconfig.HeuristicRelaxed,
					domainconfig.HeuristicGoalDistance,
					domainconfig.HeuristicZero,
				},
				Default: domainconfig.HeuristicRelaxed,
			},
		},
	}
}

func actionSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"key", "mutators"},
		Properties: map[string]*JSONSchema{
			"key":  {Type: "string", Description: "Unique action identifier"},
			"cost": {Type: "integer", Minimum: floatPtr(0), Default: 0},
			"preconditions": {
				Type:  "array",
				Items: &JSONSchema{Ref: "#/$defs/condition"},
			},
			"mutators": {
				Type:     "array",
				MinItems: intPtr(1),
				Items: &JSONSchema{
					Type:     "object",
					Required: []string{"op", "fact", "value"},
					Properties: map[string]*JSONSchema{
						"op":    {Type: "string", Enum: []string{"set", "increment", "decrement"}},
						"fact":  {Type: "string"},
						"value": {Ref: "#/$defs/scalar"},
					},
				},
			},
		},
	}
}

func conditionSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"fact", "op"},
		Properties: map[string]*JSONSchema{
			"fact":  {Type: "string"},
			"op":    {Type: "string", Enum: operators},
			"value": {Ref: "#/$defs/scalar"},
			"ref":   {Type: "string", Description: "Compare against the current value of this fact (preconditions only)"},
		},
		OneOf: []*JSONSchema{
			{Required: []string{"value"}},
			{Required: []string{"ref"}},
		},
	}
}

func goalSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"requirements"},
		Properties: map[string]*JSONSchema{
			"name":     {Type: "string"},
			"priority": {Type: "integer", Default: 0},
			"requirements": {
				Type:     "array",
				MinItems: intPtr(1),
				Items:    &JSONSchema{Ref: "#/$defs/condition"},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

// SchemaJSON returns the JSON Schema as an indented JSON string.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainconfig.ErrSchemaGenerationFailed, err)
	}
	return string(data), nil
}
