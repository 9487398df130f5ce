package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	DB string
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session       string   `json:"session"`
	Recorded      int      `json:"recorded"`
	Replayed      int      `json:"replayed"`
	Deterministic bool     `json:"deterministic"`
	Differences   []string `json:"differences,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	Total            int                   `json:"total"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [session-id]",
		Short: "Re-evaluate recorded sessions and verify determinism",
		Long: `Re-evaluate recorded sessions from their stored source and definitions
and compare every step with the recorded one. Results are compared by their
exact rendering, so NaN bounds compare equal.

Exit codes:
  0 - All sessions replayed identically
  1 - A replay differed from its recording
  2 - Command error (database not found, etc.)

Examples:
  interval replay --db history.db
  interval replay --db history.db 0192f7a4-...
  interval replay --db history.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DB))
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var ids []string
	if len(args) == 1 {
		ids = args
	} else {
		sessions, err := st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(ids)),
		Total:            len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		sr, err := replaySession(ctx, st, id, opts.logger())
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}
		result.Sessions = append(result.Sessions, sr)
		if !sr.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result)
}

// replaySession evaluates a recorded session again in a fresh environment and
// compares the steps. A recorded run that stopped on an error stops at the
// same statement on replay, so only the recorded prefix is compared.
func replaySession(ctx context.Context, st *store.Store, id string, logger *slog.Logger) (ReplaySessionResult, error) {
	sess, err := st.ReadSession(ctx, id)
	if err != nil {
		return ReplaySessionResult{}, err
	}
	recorded, err := st.ReadSteps(ctx, id)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	env := calc.NewEnv()
	for name, itv := range sess.Definitions {
		env.Set(name, itv)
	}
	ev := calc.New(calc.Options{Strict: sess.Strict, MaxSteps: sess.MaxSteps, Logger: logger})
	replayed, runErr := ev.RunSource(ctx, strings.NewReader(sess.Source), env)
	if runErr != nil {
		logger.Debug("replay stopped", "session", id, "err", runErr)
	}

	sr := ReplaySessionResult{
		Session:  id,
		Recorded: len(recorded),
		Replayed: len(replayed),
	}
	if len(recorded) != len(replayed) {
		sr.Differences = append(sr.Differences,
			fmt.Sprintf("step count: recorded %d, replayed %d", len(recorded), len(replayed)))
	}
	for i := range min(len(recorded), len(replayed)) {
		if d := diffStep(recorded[i], replayed[i]); d != "" {
			sr.Differences = append(sr.Differences, d)
		}
	}
	sr.Deterministic = len(sr.Differences) == 0
	return sr, nil
}

// diffStep describes how two steps differ, or returns "" when they match.
func diffStep(want, got calc.Step) string {
	switch {
	case want.Seq != got.Seq:
		return fmt.Sprintf("seq %d: replayed as seq %d", want.Seq, got.Seq)
	case want.Statement != got.Statement || want.Target != got.Target:
		return fmt.Sprintf("seq %d: recorded %q -> %s, replayed %q -> %s",
			want.Seq, want.Statement, want.Target, got.Statement, got.Target)
	case want.Result.String() != got.Result.String():
		return fmt.Sprintf("seq %d: %s = %v recorded, %v replayed",
			want.Seq, want.Target, want.Result, got.Result)
	}
	return ""
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{Code: ErrCodeEval, Message: "replay differed from recording"}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay differed from recording")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}

	for _, s := range result.Sessions {
		if s.Deterministic {
			fmt.Fprintf(w, "✓ %s (%d steps)\n", s.Session, s.Recorded)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", s.Session)
		for _, d := range s.Differences {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay differed from recording")
	}
	return nil
}
