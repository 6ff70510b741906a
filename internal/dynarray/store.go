package dynarray

import "context"

// Store is the persistence capability an Array can be loaded from and saved to.
//
// Implementations own all I/O. The array calls LoadAll once from NewFromStore
// and SaveAll from Save; it never closes or otherwise mutates the store.
type Store[T any] interface {
	// LoadAll returns every persisted element in order.
	LoadAll(ctx context.Context) ([]T, error)

	// SaveAll replaces the persisted state with exactly items.
	// The slice is owned by the callee after the call.
	SaveAll(ctx context.Context, items []T) error
}
