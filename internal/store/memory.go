package store

import (
	"context"
	"sync"

	"github.com/roach88/dynarray/internal/dynarray"
)

// MemoryStore is an in-memory dynarray.Store.
// Items are copied on the way in and out, so callers never share a slice
// with the store.
//
// Thread-safety: Uses sync.RWMutex for concurrent access.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	items []T
	saves int
}

var _ dynarray.Store[int] = (*MemoryStore[int])(nil)

// NewMemoryStore creates a store holding a copy of items.
func NewMemoryStore[T any](items ...T) *MemoryStore[T] {
	s := &MemoryStore[T]{}
	s.items = make([]T, len(items))
	copy(s.items, items)
	return s
}

// LoadAll returns a copy of the stored items.
func (m *MemoryStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

// SaveAll replaces the stored items with a copy of items.
func (m *MemoryStore[T]) SaveAll(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]T, len(items))
	copy(m.items, items)
	m.saves++
	return nil
}

// Saves returns the number of SaveAll calls.
func (m *MemoryStore[T]) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
