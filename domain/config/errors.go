package config

import "errors"

// Domain errors for configuration operations.
var (
	// ErrConfigNotFound indicates the scenario file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the scenario could not be decoded.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrValidationFailed indicates scenario validation failed.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = errors.New("required environment variable not set")

	// ErrBuildFailed indicates the scenario could not be turned into a planning problem.
	ErrBuildFailed = errors.New("failed to build scenario")

	// ErrSchemaGenerationFailed indicates JSON schema generation failed.
	ErrSchemaGenerationFailed = errors.New("failed to generate JSON schema")

	// ErrGoalNotFound indicates a requested goal is not declared.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrUnknownHeuristic indicates a heuristic name is not recognized.
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)
