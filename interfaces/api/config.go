package api

import (
	"fmt"

	"github.com/felixgeelhaar/goap/application"
	domainconfig "github.com/felixgeelhaar/goap/domain/config"
	infraconfig "github.com/felixgeelhaar/goap/infrastructure/config"
)

// Re-export domain configuration types.
type (
	// ScenarioConfig describes a planning problem in YAML or JSON.
	ScenarioConfig = domainconfig.ScenarioConfig
	// PlannerSettings configures the planner for a scenario.
	PlannerSettings = domainconfig.PlannerSettings
	// BatchSettings configures planning every goal at once.
	BatchSettings = domainconfig.BatchSettings
	// ActionConfig declares an action.
	ActionConfig = domainconfig.ActionConfig
	// ConditionConfig declares a precondition or goal requirement.
	ConditionConfig = domainconfig.ConditionConfig
	// MutatorConfig declares one mutator of an action's effect.
	MutatorConfig = domainconfig.MutatorConfig
	// GoalConfig declares a goal.
	GoalConfig = domainconfig.GoalConfig
	// ConfigDuration is a time.Duration that supports JSON/YAML string representation.
	ConfigDuration = domainconfig.Duration

	// ValidationError represents a scenario validation error.
	ValidationError = domainconfig.ValidationError
	// ValidationErrors is a collection of validation errors.
	ValidationErrors = domainconfig.ValidationErrors
)

// Re-export infrastructure configuration types.
type (
	// ConfigLoader loads scenarios from files.
	ConfigLoader = infraconfig.Loader
	// ConfigBuilder builds planner inputs from a scenario.
	ConfigBuilder = infraconfig.Builder
	// ConfigBuildResult is the planning problem described by a scenario.
	ConfigBuildResult = infraconfig.BuildResult
	// ConfigLoaderOption configures the loader.
	ConfigLoaderOption = infraconfig.LoaderOption
	// ConfigFormat is a scenario file format.
	ConfigFormat = infraconfig.Format
	// JSONSchema represents a JSON Schema document.
	JSONSchema = infraconfig.JSONSchema
)

// Configuration format constants.
const (
	// ConfigFormatYAML is the YAML format.
	ConfigFormatYAML = infraconfig.FormatYAML
	// ConfigFormatJSON is the JSON format.
	ConfigFormatJSON = infraconfig.FormatJSON
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates the scenario file was not found.
	ErrConfigNotFound = domainconfig.ErrConfigNotFound
	// ErrInvalidFormat indicates the scenario could not be decoded.
	ErrInvalidFormat = domainconfig.ErrInvalidFormat
	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = domainconfig.ErrUnsupportedFormat
	// ErrValidationFailed indicates scenario validation failed.
	ErrValidationFailed = domainconfig.ErrValidationFailed
	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = domainconfig.ErrMissingEnvVar
	// ErrBuildFailed indicates a scenario could not be built.
	ErrBuildFailed = domainconfig.ErrBuildFailed
	// ErrSchemaGenerationFailed indicates JSON schema generation failed.
	ErrSchemaGenerationFailed = domainconfig.ErrSchemaGenerationFailed
	// ErrGoalNotFound indicates a requested goal is not declared.
	ErrGoalNotFound = domainconfig.ErrGoalNotFound
	// ErrUnknownHeuristic indicates a heuristic name is not recognized.
	ErrUnknownHeuristic = domainconfig.ErrUnknownHeuristic
)

// NewConfigLoader creates a new scenario loader with default settings.
func NewConfigLoader() *ConfigLoader {
	return infraconfig.NewLoader()
}

// NewConfigLoaderWithOptions creates a loader with the specified options.
func NewConfigLoaderWithOptions(opts ...ConfigLoaderOption) *ConfigLoader {
	return infraconfig.NewLoaderWithOptions(opts...)
}

// ConfigWithEnvExpansion enables or disables environment variable expansion.
func ConfigWithEnvExpansion(enabled bool) ConfigLoaderOption {
	return infraconfig.WithEnvExpansion(enabled)
}

// ConfigWithStrictEnv enables strict environment variable checking.
func ConfigWithStrictEnv(enabled bool) ConfigLoaderOption {
	return infraconfig.WithStrictEnv(enabled)
}

// ConfigWithValidation enables or disables scenario validation.
func ConfigWithValidation(enabled bool) ConfigLoaderOption {
	return infraconfig.WithValidation(enabled)
}

// NewConfigBuilder creates a new scenario builder.
func NewConfigBuilder(config *ScenarioConfig) *ConfigBuilder {
	return infraconfig.NewBuilder(config)
}

// NewConfigValidator creates a new scenario validator.
func NewConfigValidator() *domainconfig.Validator {
	return domainconfig.NewValidator()
}

// LoadScenario loads and builds a scenario file.
func LoadScenario(path string, opts ...ConfigLoaderOption) (*ConfigBuildResult, error) {
	return infraconfig.LoadAndBuild(path, opts...)
}

// PlannerOptions maps a scenario's planner settings to planner options.
// Options passed in extra are applied last and win.
func PlannerOptions(result *ConfigBuildResult, extra ...Option) ([]Option, error) {
	heuristic, err := application.HeuristicByName(result.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", result.Name, err)
	}
	opts := []Option{
		application.WithHeuristic(heuristic),
		application.WithMaxExpansions(result.MaxExpansions),
		application.WithMaxGenerated(result.MaxGenerated),
		application.WithTimeout(result.Timeout),
	}
	return append(opts, extra...), nil
}

// GenerateConfigSchema generates a JSON Schema for ScenarioConfig.
func GenerateConfigSchema() *JSONSchema {
	return infraconfig.GenerateSchema()
}

// ConfigSchemaJSON returns the scenario JSON Schema as a JSON string.
func ConfigSchemaJSON() (string, error) {
	return infraconfig.SchemaJSON()
}

// ExpandEnv expands environment variables in a string.
// Supported patterns: ${VAR}, ${VAR:-default}, ${VAR:?error}
func ExpandEnv(input string) string {
	return infraconfig.ExpandEnv(input)
}

// ExpandEnvStrict expands environment variables and returns an error for missing vars.
func ExpandEnvStrict(input string) (string, error) {
	return infraconfig.ExpandEnvStrict(input)
}
