package harness

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/interval/internal/interval"
)

// writeScenario writes content to name inside dir and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", `
name: test_scenario
description: "Test scenario for validation"
definitions:
  x: [3, 3.1]
  y: 7
  z: "[1, 2]"
program: |
  a = x + y
expect:
  a: {min: 10, max: 10.1}
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.False(t, scenario.Strict)
	assert.Len(t, scenario.Definitions, 3)
	assert.Equal(t, interval.New(3, 3.1), scenario.Definitions["x"].Interval())
	assert.Equal(t, interval.Point(7), scenario.Definitions["y"].Interval())
	assert.Equal(t, interval.New(1, 2), scenario.Definitions["z"].Interval())
	require.Contains(t, scenario.Expect, "a")
	assert.Equal(t, 10.0, *scenario.Expect["a"].Min)
	assert.Equal(t, 10.1, *scenario.Expect["a"].Max)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
description: "Misspelled expect"
program: "a = 1"
expects:
  a: {min: 1}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "expects")
}

func TestLoadScenario_RelativeDefs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ops.cue"), []byte(`interval: x: {min: 1, max: 2}`), 0644))
	path := writeScenario(t, dir, "defs.yaml", `
name: with_defs
description: "Defs path is relative to the scenario"
defs: ops.cue
program: "y = x * 2"
expect:
  y: {min: 2, max: 4}
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ops.cue"), scenario.Defs)
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nprogram: \"a = 1\"\nexpect: {a: {min: 1}}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nprogram: \"a = 1\"\nexpect: {a: {min: 1}}\n",
			wantErr: "description is required",
		},
		{
			name:    "missing program",
			content: "name: n\ndescription: d\nexpect: {a: {min: 1}}\n",
			wantErr: "program is required",
		},
		{
			name:    "no expect or error",
			content: "name: n\ndescription: d\nprogram: \"a = 1\"\n",
			wantErr: "expect or error is required",
		},
		{
			name:    "empty expectation",
			content: "name: n\ndescription: d\nprogram: \"a = 1\"\nexpect: {a: {tolerance: 0.1}}\n",
			wantErr: "expect[a]: at least one of",
		},
		{
			name:    "negative tolerance",
			content: "name: n\ndescription: d\nprogram: \"a = 1\"\nexpect: {a: {min: 1, tolerance: -1}}\n",
			wantErr: "tolerance must be non-negative",
		},
		{
			name:    "missing defs file",
			content: "name: n\ndescription: d\ndefs: nope.cue\nprogram: \"a = 1\"\nexpect: {a: {min: 1}}\n",
			wantErr: "defs file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBounds_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want interval.Interval
	}{
		{"number", "7", interval.Point(7)},
		{"negative number", "-2.5", interval.Point(-2.5)},
		{"sequence", "[3, 3.1]", interval.New(3, 3.1)},
		{"inverted sequence", "[5, 2]", interval.New(5, 2)},
		{"whitespace string", `"3 3.1"`, interval.New(3, 3.1)},
		{"bracketed string", `"[-1, 1]"`, interval.New(-1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bounds
			require.NoError(t, yaml.Unmarshal([]byte(tt.in), &b))
			assert.Equal(t, tt.want, b.Interval())
		})
	}
}

func TestBounds_UnmarshalYAML_Infinity(t *testing.T) {
	var b Bounds
	require.NoError(t, yaml.Unmarshal([]byte("[-.inf, .inf]"), &b))
	assert.True(t, math.IsInf(b.Interval().Min(), -1))
	assert.True(t, math.IsInf(b.Interval().Max(), 1))
}

func TestBounds_UnmarshalYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"three values", "[1, 2, 3]", "got 3 values"},
		{"one value", "[1]", "got 1 values"},
		{"mapping", "{min: 1, max: 2}", "must be a number"},
		{"bad string", `"one two"`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bounds
			err := yaml.Unmarshal([]byte(tt.in), &b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
