package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/interval/internal/interval"
)

// Scenario defines a program run and the results it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Strict runs the program in strict mode.
	Strict bool `yaml:"strict,omitempty"`

	// Defs is an optional CUE definitions file, relative to the scenario.
	Defs string `yaml:"defs,omitempty"`

	// Definitions binds names before the program runs. Entries here override
	// intervals of the same name from Defs.
	Definitions map[string]Bounds `yaml:"definitions,omitempty"`

	// Program is calc source.
	Program string `yaml:"program"`

	// Expect maps variable names to their expected final value.
	Expect map[string]Expectation `yaml:"expect,omitempty"`

	// Error, when set, requires the run to fail with a message containing it.
	Error string `yaml:"error,omitempty"`
}

// Expectation describes the expected final value of a variable.
type Expectation struct {
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
	Tolerance float64  `yaml:"tolerance,omitempty"`

	// WellFormed, when set, checks Interval.IsWellFormed.
	WellFormed *bool `yaml:"well_formed,omitempty"`

	// Contains lists values that must lie inside the interval.
	Contains []float64 `yaml:"contains,omitempty"`
}

// DefaultTolerance is used when an expectation sets no tolerance.
const DefaultTolerance = 1e-9

// Bounds is an interval written in YAML as a scalar, a [min, max] sequence
// or a string accepted by interval.Parse.
type Bounds interval.Interval

// Interval returns b as an interval.Interval.
func (b Bounds) Interval() interval.Interval {
	return interval.Interval(b)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bounds) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!str" {
			itv, err := interval.Parse(node.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			*b = Bounds(itv)
			return nil
		}
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*b = Bounds(interval.Point(v))
		return nil
	case yaml.SequenceNode:
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: interval needs [min, max], got %d values", node.Line, len(pair))
		}
		*b = Bounds(interval.New(pair[0], pair[1]))
		return nil
	default:
		return fmt.Errorf("line %d: interval must be a number, [min, max] or string", node.Line)
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative Defs path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Defs != "" && !filepath.IsAbs(scenario.Defs) {
		scenario.Defs = filepath.Join(filepath.Dir(path), scenario.Defs)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program == "" {
		return fmt.Errorf("program is required")
	}

	if len(s.Expect) == 0 && s.Error == "" {
		return fmt.Errorf("expect or error is required")
	}

	if s.Defs != "" {
		if _, err := os.Stat(s.Defs); os.IsNotExist(err) {
			return fmt.Errorf("defs file not found: %s", s.Defs)
		}
	}

	for name, exp := range s.Expect {
		if exp.Min == nil && exp.Max == nil && exp.WellFormed == nil && len(exp.Contains) == 0 {
			return fmt.Errorf("expect[%s]: at least one of min, max, well_formed, contains is required", name)
		}
		if exp.Tolerance < 0 {
			return fmt.Errorf("expect[%s]: tolerance must be non-negative", name)
		}
	}

	return nil
}
