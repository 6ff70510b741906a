// Package dynarray provides a generic growable array with an optional
// persistence hook.
//
// An Array owns a fixed-size backing buffer and a logical length. Appends and
// inserts grow the buffer by reallocate-and-copy when the required length
// exceeds the current capacity:
//
//	newCap = max(cap * GrowthFactor, required)
//
// so bulk appends never undershoot and single appends are amortized O(1).
//
// # Persistence
//
// An Array built with NewFromStore keeps a non-owning reference to a Store.
// Every mutation marks the array dirty; Save hands exactly the live elements
// to Store.SaveAll and clears the flag on success. Store errors are returned
// unmodified and leave the array dirty, so a retried Save is meaningful.
//
// # Index bounds
//
// Get and Set accept indices in [0, Len()). Insert accepts [0, Len()], where
// Len() appends. Bound checks never mutate the array.
//
// # Concurrency
//
// Array is not safe for concurrent use. Mutating an array while ranging over
// All or Values is undefined.
package dynarray
