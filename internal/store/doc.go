// Package store provides SQLite-backed durable storage for dynamic arrays.
//
// A database holds any number of named lists. Each list is persisted as:
//   - lists: one row per list with its current length
//   - elements: one row per element, keyed by (list, position)
//   - revisions: one row per successful save, identified by a UUIDv7
//
// List[T] adapts a named list to dynarray.Store[T]: LoadAll reads the
// elements ordered by position, and SaveAll replaces them in a single
// transaction so a failed save never leaves a partially written list.
//
// Element values are stored as TEXT produced by a Codec.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Dropping a list cascades to its elements and revisions
//
// MemoryStore is an in-memory dynarray.Store for callers that need no disk.
package store
