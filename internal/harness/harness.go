package harness

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/defs"
	"github.com/roach88/interval/internal/interval"
)

// Options configures scenario execution.
type Options struct {
	// Logger receives evaluator debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh environment with a clock starting at 0, so
// traces are identical across runs. Expectation failures are reported in
// Result.Errors; the returned error is reserved for scenarios that cannot be
// set up (for example an unreadable defs file).
func Run(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	env := calc.NewEnv()
	strict := scenario.Strict

	if scenario.Defs != "" {
		d, err := defs.LoadFile(scenario.Defs)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		d.Apply(env)
		strict = strict || d.Settings.Strict
	}
	for name, b := range scenario.Definitions {
		env.Set(name, b.Interval())
	}

	result := NewResult()
	env.Each(func(name string, itv interval.Interval) {
		result.Trace = append(result.Trace, TraceEvent{
			Type:   EventDefinition,
			Target: name,
			Result: itv,
		})
	})

	ev := calc.New(calc.Options{Strict: strict, Logger: logger})
	steps, runErr := ev.RunSource(ctx, strings.NewReader(scenario.Program), env)
	for _, s := range steps {
		result.Trace = append(result.Trace, TraceEvent{
			Type:      EventStep,
			Seq:       s.Seq,
			Line:      s.Line,
			Statement: s.Statement,
			Target:    s.Target,
			Result:    s.Result,
		})
	}

	env.Each(func(name string, itv interval.Interval) {
		result.Final[name] = itv
	})

	switch {
	case runErr != nil:
		result.RunError = runErr.Error()
		if scenario.Error == "" {
			result.AddError(fmt.Sprintf("run failed: %v", runErr))
		} else if !strings.Contains(runErr.Error(), scenario.Error) {
			result.AddError(fmt.Sprintf("run error %q does not contain %q", runErr.Error(), scenario.Error))
		}
	case scenario.Error != "":
		result.AddError(fmt.Sprintf("expected run to fail with %q", scenario.Error))
	}

	checkExpectations(scenario, env, result)
	return result, nil
}

// checkExpectations compares final values in name order.
func checkExpectations(scenario *Scenario, env *calc.Env, result *Result) {
	names := make([]string, 0, len(scenario.Expect))
	for name := range scenario.Expect {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		exp := scenario.Expect[name]
		got, ok := env.Get(name)
		if !ok {
			result.AddError(fmt.Sprintf("%s: not bound", name))
			continue
		}
		for _, msg := range exp.check(got) {
			result.AddError(fmt.Sprintf("%s: %s", name, msg))
		}
	}
}

func (e Expectation) check(got interval.Interval) []string {
	tol := e.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	var failures []string
	if e.Min != nil && !boundMatches(*e.Min, got.Min(), tol) {
		failures = append(failures, fmt.Sprintf("min = %v, expected %v (tolerance %g)", got.Min(), *e.Min, tol))
	}
	if e.Max != nil && !boundMatches(*e.Max, got.Max(), tol) {
		failures = append(failures, fmt.Sprintf("max = %v, expected %v (tolerance %g)", got.Max(), *e.Max, tol))
	}
	if e.WellFormed != nil && got.IsWellFormed() != *e.WellFormed {
		failures = append(failures, fmt.Sprintf("%v well_formed = %t, expected %t", got, got.IsWellFormed(), *e.WellFormed))
	}
	for _, v := range e.Contains {
		if !got.Contains(v) {
			failures = append(failures, fmt.Sprintf("%v does not contain %v", got, v))
		}
	}
	return failures
}

// boundMatches compares bounds within tol, treating NaN as equal to NaN and
// requiring infinities to match exactly.
func boundMatches(want, got, tol float64) bool {
	switch {
	case math.IsNaN(want) || math.IsNaN(got):
		return math.IsNaN(want) && math.IsNaN(got)
	case math.IsInf(want, 0) || math.IsInf(got, 0):
		return want == got
	default:
		return math.Abs(want-got) <= tol
	}
}
