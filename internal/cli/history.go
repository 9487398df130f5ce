package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB     string // database path
	Target string // show every step that wrote this name
}

// SessionHistory is the history command's output for one session.
type SessionHistory struct {
	Session store.Session `json:"session"`
	Steps   []calc.Step   `json:"steps"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "Show recorded evaluations",
		Long: `Show sessions recorded by "interval eval --db".

Without arguments, lists every session oldest first. With a session id,
prints that session's steps. With --target, prints every recorded step
that wrote the named variable across all sessions.

Examples:
  interval history --db history.db
  interval history --db history.db 0192f7a4-...
  interval history --db history.db --target p`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "show steps that wrote this variable")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		msg := fmt.Sprintf("database not found: %s", opts.DB)
		formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	switch {
	case opts.Target != "":
		steps, err := st.StepsForTarget(ctx, opts.Target)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "read steps", err)
		}
		if steps == nil {
			steps = []calc.Step{}
		}
		if formatter.IsJSON() {
			return formatter.Success(steps)
		}
		writeSteps(formatter.Writer, steps, opts.precision())
		return nil

	case len(args) == 1:
		sess, err := st.ReadSession(ctx, args[0])
		if errors.Is(err, store.ErrSessionNotFound) {
			formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "read session", err)
		}
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "read session", err)
		}
		steps, err := st.ReadSteps(ctx, sess.ID)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "read steps", err)
		}
		if steps == nil {
			steps = []calc.Step{}
		}
		if formatter.IsJSON() {
			return formatter.Success(SessionHistory{Session: sess, Steps: steps})
		}
		fmt.Fprintf(formatter.Writer, "session: %s\n", sess.ID)
		if sess.Strict {
			fmt.Fprintln(formatter.Writer, "strict: true")
		}
		writeSteps(formatter.Writer, steps, opts.precision())
		return nil

	default:
		sessions, err := st.ListSessions(ctx)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "list sessions", err)
		}
		if sessions == nil {
			sessions = []store.SessionSummary{}
		}
		if formatter.IsJSON() {
			return formatter.Success(sessions)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(formatter.Writer, "No sessions recorded.")
			return nil
		}
		for _, s := range sessions {
			mode := ""
			if s.Strict {
				mode = "  strict"
			}
			fmt.Fprintf(formatter.Writer, "%s  %d step(s)%s  %s\n", s.ID, s.Steps, mode, firstLine(s.Source))
		}
		return nil
	}
}

// firstLine returns the first non-blank line of src, for one-line listings.
func firstLine(src string) string {
	for line := range strings.Lines(src) {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
