package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/interval"
)

// ErrSessionNotFound is returned when a session id has no record.
var ErrSessionNotFound = errors.New("session not found")

// SessionSummary is a session with its step count.
type SessionSummary struct {
	Session
	Steps int `json:"steps"`
}

// ListSessions returns all sessions ordered by id, which is creation order
// for UUIDv7 ids.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.source, s.strict, s.max_steps, s.definitions, COUNT(st.seq)
		FROM sessions s
		LEFT JOIN steps st ON st.session_id = s.id
		GROUP BY s.id
		ORDER BY s.id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			sum         SessionSummary
			definitions string
		)
		if err := rows.Scan(&sum.ID, &sum.Source, &sum.Strict, &sum.MaxSteps, &definitions, &sum.Steps); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		if sum.Definitions, err = unmarshalDefinitions(definitions); err != nil {
			return nil, fmt.Errorf("list sessions: %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// ReadSession returns a single session.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	var (
		sess        Session
		definitions string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, strict, max_steps, definitions FROM sessions WHERE id = ?
	`, id).Scan(&sess.ID, &sess.Source, &sess.Strict, &sess.MaxSteps, &definitions)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	if sess.Definitions, err = unmarshalDefinitions(definitions); err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// ReadSteps returns a session's steps ordered by seq.
func (s *Store) ReadSteps(ctx context.Context, sessionID string) ([]calc.Step, error) {
	return s.querySteps(ctx, `
		SELECT seq, line, statement, kind, target, op, result
		FROM steps
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
}

// StepsForTarget returns every recorded step that wrote target, across all
// sessions, ordered by session then seq.
func (s *Store) StepsForTarget(ctx context.Context, target string) ([]calc.Step, error) {
	return s.querySteps(ctx, `
		SELECT seq, line, statement, kind, target, op, result
		FROM steps
		WHERE target = ?
		ORDER BY session_id ASC COLLATE BINARY, seq ASC
	`, calc.NormalizeName(target))
}

func (s *Store) querySteps(ctx context.Context, query string, args ...any) ([]calc.Step, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read steps: %w", err)
	}
	defer rows.Close()

	var out []calc.Step
	for rows.Next() {
		var (
			step   calc.Step
			kind   int
			result string
		)
		if err := rows.Scan(&step.Seq, &step.Line, &step.Statement, &kind, &step.Target, &step.Op, &result); err != nil {
			return nil, fmt.Errorf("read steps: %w", err)
		}
		step.Kind = calc.StatementKind(kind)
		step.Result, err = interval.Parse(result)
		if err != nil {
			return nil, fmt.Errorf("read steps: seq %d: %w", step.Seq, err)
		}
		out = append(out, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read steps: %w", err)
	}
	return out, nil
}
