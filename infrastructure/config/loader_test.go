package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainconfig "github.com/felixgeelhaar/goap/domain/config"
)

const farmYAML = `
name: farm
version: "1.0"
planner:
  max_expansions: 500
  max_generated: 4000
  timeout: 2s
  heuristic: relaxed
batch:
  max_concurrent: 4
  max_expansions: 1500
state:
  energy: 0
  gold: 1
  price: 3
  at: home
  owned: false
actions:
  - key: sleep
    cost: 1
    mutators:
      - {op: increment, fact: energy, value: 5}
  - key: work
    cost: 2
    preconditions:
      - {fact: energy, op: ">=", value: 2}
    mutators:
      - {op: decrement, fact: energy, value: 2}
      - {op: increment, fact: gold, value: 1}
  - key: buy
    cost: 1
    preconditions:
      - {fact: gold, op: ">=", ref: price}
    mutators:
      - {op: set, fact: owned, value: true}
goals:
  - name: rested
    priority: 1
    requirements:
      - {fact: energy, op: ">=", value: 10}
  - name: rich
    priority: 5
    requirements:
      - {fact: owned, op: "==", value: true}
  - name: also_rich
    priority: 5
    requirements:
      - {fact: gold, op: ">", value: 4}
`

const farmJSON = `{
  "name": "farm",
  "version": "1.0",
  "state": {"energy": 0, "ratio": 0.5},
  "actions": [
    {"key": "sleep", "cost": 1, "mutators": [{"op": "increment", "fact": "energy", "value": 5}]}
  ],
  "goals": [
    {"name": "rested", "requirements": [{"fact": "energy", "op": ">=", "value": 10}]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "farm.yaml", farmYAML},
		{"yml", "farm.yml", farmYAML},
		{"json", "farm.json", farmJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewLoader().LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if cfg.Name != "farm" || len(cfg.Actions) == 0 || len(cfg.Goals) == 0 {
				t.Errorf("LoadFile() = %+v", cfg)
			}
		})
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), domainconfig.ErrConfigNotFound},
		{"directory", dir, domainconfig.ErrInvalidFormat},
		{"extension", writeFile(t, "farm.toml", "name = 'farm'"), domainconfig.ErrUnsupportedFormat},
		{"malformed", writeFile(t, "farm.yaml", "name: [unclosed"), domainconfig.ErrInvalidFormat},
		{"invalid", writeFile(t, "farm.json", `{"name": "farm"}`), domainconfig.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewLoader().LoadFile(tt.path); !errors.Is(err, tt.want) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoader_ValidationErrorsAreInspectable(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().LoadString("name: farm\n", FormatYAML)
	var errs domainconfig.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("LoadString() error = %v, want ValidationErrors", err)
	}
	if len(errs) == 0 {
		t.Error("ValidationErrors should not be empty")
	}
}

func TestLoader_WithoutValidation(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoaderWithOptions(WithValidation(false)).LoadString(`{"name": "partial"}`, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if cfg.Name != "partial" {
		t.Errorf("Name = %q, want partial", cfg.Name)
	}
}

func TestLoader_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader().LoadBytes([]byte("{}"), Format("toml")); !errors.Is(err, domainconfig.ErrUnsupportedFormat) {
		t.Errorf("LoadBytes() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoader_JSONKeepsIntegers(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().LoadString(farmJSON, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	result, err := NewBuilder(cfg).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	energy, _ := result.State.Get("energy")
	if _, ok := energy.AsInt(); !ok {
		t.Errorf("energy = %#v, want an int", energy)
	}
	ratio, _ := result.State.Get("ratio")
	if f, ok := ratio.AsFloat(); !ok || f != 0.5 {
		t.Errorf("ratio = %#v, want float 0.5", ratio)
	}
}

func TestLoader_ExpandsEnv(t *testing.T) {
	t.Setenv("GOAP_TEST_TARGET", "15")

	content := `
name: farm
version: "1.0"
state: {energy: 0}
actions:
  - key: sleep
    mutators: [{op: increment, fact: energy, value: ${GOAP_TEST_STEP:-5}}]
goals:
  - requirements: [{fact: energy, op: ">=", value: ${GOAP_TEST_TARGET}}]
`
	cfg, err := NewLoader().LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if cfg.Actions[0].Mutators[0].Value != 5 {
		t.Errorf("step = %v, want default 5", cfg.Actions[0].Mutators[0].Value)
	}
	if cfg.Goals[0].Requirements[0].Value != 15 {
		t.Errorf("target = %v, want 15", cfg.Goals[0].Requirements[0].Value)
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"dir/a.json", FormatJSON, false},
		{"a.txt", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}
