package testutil

import (
	"context"
	"slices"
	"sync"
)

// RecordingStore is an in-memory store that records every SaveAll call.
//
// LoadErr and SaveErr, when set, are returned by LoadAll and SaveAll
// respectively. A failed SaveAll is still recorded as a call but does not
// replace the stored items.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type RecordingStore[T any] struct {
	mu      sync.Mutex
	items   []T
	loads   int
	saves   [][]T
	LoadErr error
	SaveErr error
}

// NewRecordingStore creates a store preloaded with items.
func NewRecordingStore[T any](items ...T) *RecordingStore[T] {
	return &RecordingStore[T]{items: slices.Clone(items)}
}

// LoadAll returns a copy of the stored items.
func (s *RecordingStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// SaveAll records the call and replaces the stored items.
func (s *RecordingStore[T]) SaveAll(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]T, len(items))
	copy(saved, items)
	s.saves = append(s.saves, saved)
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.items = saved
	return nil
}

// Loads returns the number of LoadAll calls.
func (s *RecordingStore[T]) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// Saves returns a copy of the arguments of every SaveAll call, in call order.
func (s *RecordingStore[T]) Saves() [][]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]T, len(s.saves))
	for i, items := range s.saves {
		out[i] = slices.Clone(items)
	}
	return out
}

// Items returns a copy of the currently stored items.
func (s *RecordingStore[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}
