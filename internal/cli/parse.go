package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/interval"
)

// ParseResult is the parse command's output.
type ParseResult struct {
	Input      string            `json:"input"`
	Interval   interval.Interval `json:"interval"`
	WellFormed bool              `json:"well_formed"`
	Problem    string            `json:"problem,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <text>...",
		Short: "Parse and re-render an interval",
		Long: `Parse an interval from text and print it back.

Accepts two whitespace-separated numbers ("3 3.1") or the bracketed form
("[3, 3.1]"). Multiple arguments are joined with spaces, so
"interval parse 3 3.1" works without quoting. Bounds are not reordered; an
inverted or NaN interval is reported as ill-formed.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runParse(opts *RootOptions, text string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	itv, err := interval.Parse(text)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitFailure, "parse interval", err)
	}

	result := ParseResult{Input: text, Interval: itv, WellFormed: true}
	if err := itv.Validate(); err != nil {
		result.WellFormed = false
		result.Problem = err.Error()
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%.*g\n", opts.precision(), itv)
	if result.WellFormed {
		fmt.Fprintln(w, "well-formed")
	} else {
		fmt.Fprintf(w, "ill-formed: %s\n", result.Problem)
	}
	formatter.VerboseLog("exact: %v", itv)
	return nil
}
