package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/defs"
	"github.com/roach88/interval/internal/interval"
	"github.com/roach88/interval/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Defs   string // CUE definitions file
	Strict bool   // checked division and well-formed results
	DB     string // record the session to this database

	// MaxSteps aborts a program that produces more steps. Zero means no limit.
	MaxSteps int

	// IDs generates session ids. Defaults to store.UUIDv7Generator.
	IDs store.IDGenerator
}

// EvalResult is the eval command's output.
type EvalResult struct {
	Session string                       `json:"session,omitempty"`
	Steps   []calc.Step                  `json:"steps"`
	Final   map[string]interval.Interval `json:"final"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return newEvalCommand(&EvalOptions{RootOptions: rootOpts})
}

func newEvalCommand(opts *EvalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <file|->",
		Short: "Evaluate an interval program",
		Long: `Evaluate an interval program and print every step.

A program has one statement per line:
  name = operand
  name = operand OP operand      (OP is + - * /)
  name OP= operand               (compound assignment)
  print name...
Operands are names, numbers or [min, max] literals. # starts a comment.

Exit codes:
  0 - Program ran to completion
  1 - Syntax or evaluation error
  2 - Command error (missing file, database error)

Examples:
  interval eval prog.txt
  interval eval prog.txt --defs ops.cue --strict
  echo "a = [1, 2] * 3" | interval eval -
  interval eval prog.txt --db history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Defs, "defs", "", "CUE definitions file")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject division by intervals containing zero and ill-formed results")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the session to a SQLite database")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "abort after this many steps (0 = no limit)")

	return cmd
}

func runEval(ctx context.Context, opts *EvalOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	src, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read program", err)
	}

	prog, err := calc.ParseString(src)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitFailure, "parse program", err)
	}

	env := calc.NewEnv()
	strict := opts.Strict
	precision := opts.precision()
	if opts.Defs != "" {
		d, err := defs.LoadFile(opts.Defs)
		if err != nil {
			formatter.Error(ErrCodeDefs, err.Error(), nil)
			return WrapExitError(ExitFailure, "load definitions", err)
		}
		d.Apply(env)
		if d.Settings.StrictSet && !cmd.Flags().Changed("strict") {
			strict = d.Settings.Strict
		}
		if !opts.PrecisionSet {
			precision = d.Settings.Precision
		}
		formatter.VerboseLog("Loaded %d interval(s) from %s", len(d.Intervals), opts.Defs)
	}

	bound := snapshot(env)
	ev := calc.New(calc.Options{Strict: strict, Logger: logger, MaxSteps: opts.MaxSteps})
	steps, runErr := ev.Run(ctx, prog, env)
	logger.Debug("evaluation finished", "steps", len(steps), "last_seq", ev.Clock().Current())

	result := EvalResult{Steps: steps, Final: snapshot(env)}
	if result.Steps == nil {
		result.Steps = []calc.Step{}
	}

	if opts.DB != "" {
		id, err := recordSession(ctx, opts, store.Session{Source: src, Strict: strict, MaxSteps: opts.MaxSteps, Definitions: bound}, steps)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "record session", err)
		}
		result.Session = id
		logger.Debug("session recorded", "id", id, "steps", len(steps))
	}

	if runErr != nil {
		var stepErr *calc.StepError
		details := map[string]any{"steps": result.Steps}
		if errors.As(runErr, &stepErr) {
			details["line"] = stepErr.Line
		}
		if formatter.IsJSON() {
			formatter.Error(ErrCodeEval, runErr.Error(), details)
		} else {
			writeSteps(formatter.Writer, steps, precision)
			formatter.Error(ErrCodeEval, runErr.Error(), nil)
		}
		return WrapExitError(ExitFailure, "evaluation failed", runErr)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	writeSteps(formatter.Writer, steps, precision)
	if result.Session != "" {
		fmt.Fprintf(formatter.Writer, "session: %s\n", result.Session)
	}
	return nil
}

// readSource reads a program from path, or from stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("program file not found: %s", path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func recordSession(ctx context.Context, opts *EvalOptions, sess store.Session, steps []calc.Step) (string, error) {
	st, err := store.Open(opts.DB)
	if err != nil {
		return "", err
	}
	defer st.Close()

	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	sess.ID = ids.Generate()
	if err := st.Record(ctx, sess, steps); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// snapshot copies every binding in env.
func snapshot(env *calc.Env) map[string]interval.Interval {
	out := make(map[string]interval.Interval, env.Len())
	env.Each(func(name string, itv interval.Interval) {
		out[name] = itv
	})
	return out
}

// writeSteps prints one line per step: seq, statement, target and value.
func writeSteps(w io.Writer, steps []calc.Step, precision int) {
	for _, s := range steps {
		fmt.Fprintf(w, "%d | %s | %s = %.*g\n", s.Seq, s.Statement, s.Target, precision, s.Result)
	}
}
