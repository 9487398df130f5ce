package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/interval"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStep creates a step writing target with the given result.
func createTestStep(seq int64, target string, result interval.Interval) calc.Step {
	return calc.Step{
		Seq:       seq,
		Line:      int(seq),
		Statement: target + " = " + result.String(),
		Kind:      calc.KindBind,
		Target:    target,
		Result:    result,
	}
}
