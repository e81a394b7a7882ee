package testutil

import (
	"fmt"
	"sync"
)

// SequentialRunIDGenerator returns "<prefix>-1", "<prefix>-2", ... so that
// run IDs in golden files and history tests are predictable.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialRunIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialRunIDGenerator creates a generator. An empty prefix defaults
// to "test-run".
func NewSequentialRunIDGenerator(prefix string) *SequentialRunIDGenerator {
	if prefix == "" {
		prefix = "test-run"
	}
	return &SequentialRunIDGenerator{prefix: prefix}
}

// Generate returns the next run ID.
func (g *SequentialRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
