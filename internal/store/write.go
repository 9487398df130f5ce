package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/interval"
)

// Session is one recorded evaluation.
type Session struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Strict bool   `json:"strict"`

	// MaxSteps is the step limit the session ran under, zero for none.
	MaxSteps int `json:"max_steps,omitempty"`

	// Definitions are the names bound before the program ran, so the
	// session can be replayed without the definitions file it was run with.
	Definitions map[string]interval.Interval `json:"definitions,omitempty"`
}

// Record writes a session and its steps in a single transaction.
// Re-recording a session id is a no-op for rows that already exist.
func (s *Store) Record(ctx context.Context, sess Session, steps []calc.Step) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	defer tx.Rollback()

	definitions, err := marshalDefinitions(sess.Definitions)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, source, strict, max_steps, definitions)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sess.ID, sess.Source, sess.Strict, sess.MaxSteps, definitions)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO steps
		(session_id, seq, line, statement, kind, target, op, result, min, max)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("record steps: %w", err)
	}
	defer stmt.Close()

	for _, step := range steps {
		_, err := stmt.ExecContext(ctx,
			sess.ID,
			step.Seq,
			step.Line,
			step.Statement,
			int(step.Kind),
			step.Target,
			step.Op,
			step.Result.String(),
			nullableBound(step.Result.Min()),
			nullableBound(step.Result.Max()),
		)
		if err != nil {
			return fmt.Errorf("record step %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// nullableBound maps NaN to SQL NULL.
func nullableBound(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// marshalDefinitions encodes definitions as a JSON object. encoding/json
// sorts map keys, so equal maps produce equal text.
func marshalDefinitions(defs map[string]interval.Interval) (string, error) {
	if len(defs) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("marshal definitions: %w", err)
	}
	return string(data), nil
}

func unmarshalDefinitions(text string) (map[string]interval.Interval, error) {
	var defs map[string]interval.Interval
	if err := json.Unmarshal([]byte(text), &defs); err != nil {
		return nil, fmt.Errorf("unmarshal definitions: %w", err)
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return defs, nil
}
