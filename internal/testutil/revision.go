package testutil

import (
	"fmt"
	"sync"
)

// SequentialRevisionGenerator produces predictable revision IDs for tests.
//
// IDs are "<prefix>-0001", "<prefix>-0002", ... so golden output and
// assertions do not depend on wall-clock UUIDs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialRevisionGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequentialRevisionGenerator creates a generator whose first ID ends in 0001.
//
// If prefix is empty, "rev" is used.
func NewSequentialRevisionGenerator(prefix string) *SequentialRevisionGenerator {
	if prefix == "" {
		prefix = "rev"
	}
	return &SequentialRevisionGenerator{prefix: prefix}
}

// Generate returns the next revision ID.
func (g *SequentialRevisionGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Reset restarts the sequence so the next ID ends in 0001.
func (g *SequentialRevisionGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
