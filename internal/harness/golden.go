package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TracePrecision is the number of significant digits used in golden traces.
const TracePrecision = 6

// RenderTrace formats a result as stable text: definitions, then one line
// per step, then the run error if any.
func RenderTrace(name string, result *Result, precision int) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, ev := range result.Trace {
		switch ev.Type {
		case EventDefinition:
			fmt.Fprintf(&b, "def %s = %.*g\n", ev.Target, precision, ev.Result)
		default:
			fmt.Fprintf(&b, "%d | %s | %s = %.*g\n", ev.Seq, ev.Statement, ev.Target, precision, ev.Result)
		}
	}
	if result.RunError != "" {
		fmt.Fprintf(&b, "error: %s\n", result.RunError)
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario, Options{})
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, RenderTrace(scenarioName, result, TracePrecision))
}
