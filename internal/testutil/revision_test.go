package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialRevisionGenerator_Sequence(t *testing.T) {
	gen := NewSequentialRevisionGenerator("save")

	assert.Equal(t, "save-0001", gen.Generate())
	assert.Equal(t, "save-0002", gen.Generate())
	assert.Equal(t, "save-0003", gen.Generate())
}

func TestSequentialRevisionGenerator_DefaultPrefix(t *testing.T) {
	gen := NewSequentialRevisionGenerator("")
	assert.Equal(t, "rev-0001", gen.Generate())
}

func TestSequentialRevisionGenerator_Reset(t *testing.T) {
	gen := NewSequentialRevisionGenerator("rev")
	gen.Generate()
	gen.Generate()

	gen.Reset()
	assert.Equal(t, "rev-0001", gen.Generate())
}

func TestSequentialRevisionGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequentialRevisionGenerator("rev")
	const numGoroutines = 10
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	seen := make(chan string, numGoroutines*callsPerGoroutine)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				seen <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, numGoroutines*callsPerGoroutine)
}
