package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/goap/domain/config"
)

var (
	// ${VAR}, ${VAR:-default}, ${VAR:?message}
	bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)
	simplePattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// envExpander expands environment variables in scenario files.
type envExpander struct {
	// strict fails if a referenced variable is not set.
	strict  bool
	missing []string
}

// Expand expands environment variables in the input string.
// Supported patterns:
//   - ${VAR} expands to the value of VAR
//   - ${VAR:-default} expands to VAR or "default" if unset or empty
//   - ${VAR:?message} fails if VAR is unset or empty
//   - $VAR simple expansion
func (e *envExpander) Expand(input string) (string, error) {
	e.missing = nil

	result := bracketPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := bracketPattern.FindStringSubmatch(match)
		name, modifier := groups[1], groups[2]
		value, exists := os.LookupEnv(name)

		switch {
		case strings.HasPrefix(modifier, ":-"):
			if value == "" {
				return modifier[2:]
			}
		case strings.HasPrefix(modifier, ":?"):
			if value == "" {
				e.missing = append(e.missing, fmt.Sprintf("%s: %s", name, modifier[2:]))
			}
		case !exists:
			e.lookupFailed(name)
		}
		return value
	})

	result = simplePattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[1:]
		value, exists := os.LookupEnv(name)
		if !exists {
			e.lookupFailed(name)
		}
		return value
	})

	if len(e.missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(e.missing, ", "))
	}
	return result, nil
}

func (e *envExpander) lookupFailed(name string) {
	if e.strict {
		e.missing = append(e.missing, name)
	}
}

// ExpandEnv expands environment variables, leaving unset ones empty.
func ExpandEnv(input string) string {
	result, _ := (&envExpander{}).Expand(input)
	return result
}

// ExpandEnvStrict expands environment variables and returns an error for missing vars.
func ExpandEnvStrict(input string) (string, error) {
	return (&envExpander{strict: true}).Expand(input)
}
