package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator returns predetermined ids for testing.
//
// Tests can provide a known sequence of ids and verify exact store contents.
// Ids given in sorted order keep session listing order deterministic.
//
// Thread-safety: SequenceIDGenerator is safe for concurrent use via internal mutex.
type SequenceIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewSequenceIDGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewSequenceIDGenerator("session-1", "session-2")
//	gen.Generate() // "session-1"
//	gen.Generate() // "session-2"
//	gen.Generate() // panic: all ids exhausted
func NewSequenceIDGenerator(ids ...string) *SequenceIDGenerator {
	return &SequenceIDGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics if all ids have been consumed, which catches a test that records
// more sessions than it expected.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("SequenceIDGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// FixedIDGenerator returns the same id every time.
//
// If id is empty, Generate returns "test-session-default".
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// NumberedIDs returns n ids "<prefix>-001" ... that sort in generation order.
func NumberedIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%03d", prefix, i+1)
	}
	return ids
}
