package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/defs"
	"github.com/roach88/interval/internal/interval"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                         `json:"valid"`
	File      string                       `json:"file"`
	Intervals map[string]interval.Interval `json:"intervals,omitempty"`
	Settings  *defs.Settings               `json:"settings,omitempty"`
	Errors    []ValidationError            `json:"errors,omitempty"`
}

// ValidationError locates a problem in a definitions file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <defs.cue>",
		Short: "Validate an interval definitions file",
		Long: `Compile a CUE definitions file and report its intervals and settings.

A definitions file binds names to bounds and may set evaluation defaults:

  interval: {
      x: {min: 3, max: 3.1}
      y: {min: 7, max: 7}
  }
  settings: {precision: 6, strict: true}

Every interval must satisfy max >= min.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		msg := fmt.Sprintf("definitions file not found: %s", path)
		formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	d, err := defs.LoadFile(path)
	if err != nil {
		verr := toValidationError(err)
		formatter.Error(ErrCodeDefs, err.Error(), []ValidationError{verr})
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	formatter.VerboseLog("Compiled %s: %d interval(s)", path, len(d.Intervals))

	if formatter.IsJSON() {
		return formatter.Success(ValidationResult{
			Valid:     true,
			File:      path,
			Intervals: d.Intervals,
			Settings:  &d.Settings,
		})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ %s: %d interval(s)\n", path, len(d.Intervals))
	precision := d.Settings.Precision
	if opts.PrecisionSet {
		precision = opts.precision()
	}
	for _, name := range d.Names() {
		fmt.Fprintf(w, "  %s = %.*g\n", name, precision, d.Intervals[name])
	}
	fmt.Fprintf(w, "  settings: precision=%d strict=%t\n", d.Settings.Precision, d.Settings.Strict)
	return nil
}

// toValidationError converts a load error, keeping the CUE position when
// there is one.
func toValidationError(err error) ValidationError {
	var cErr *defs.CompileError
	if errors.As(err, &cErr) {
		v := ValidationError{Field: cErr.Field, Message: cErr.Message}
		if cErr.Pos.IsValid() {
			v.Line = cErr.Pos.Line()
			v.Column = cErr.Pos.Column()
		}
		return v
	}
	return ValidationError{Field: "file", Message: err.Error()}
}
