package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Precision int    // significant digits for printed bounds

	// PrecisionSet reports whether --precision was given explicitly, so a
	// definitions file can supply its own default.
	PrecisionSet bool

	// Logger is installed by the root command. Commands built on their own
	// (as in tests) fall back to a discarding logger.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultPrecision is the number of significant digits printed per bound.
const DefaultPrecision = 6

// MaxPrecision is enough digits to round-trip any float64.
const MaxPrecision = 17

// NewRootCommand creates the root command for the interval CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Closed-interval arithmetic",
		Long: `Evaluate closed-interval arithmetic on [min, max] bounds.

Programs bind names to intervals and combine them with + - * / and the
compound forms += -= *= /=. Scalars mix freely on either side.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Precision < 1 || opts.Precision > MaxPrecision {
				return fmt.Errorf("invalid precision %d: must be between 1 and %d", opts.Precision, MaxPrecision)
			}
			opts.PrecisionSet = cmd.Flags().Changed("precision")
			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			slog.SetDefault(opts.Logger)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVarP(&opts.Precision, "precision", "p", DefaultPrecision, "significant digits for printed bounds")

	// Add subcommands
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o *RootOptions) precision() int {
	if o.Precision == 0 {
		return DefaultPrecision
	}
	return o.Precision
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
