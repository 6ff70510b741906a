package store

import "github.com/google/uuid"

// RevisionGenerator produces IDs for save revisions.
type RevisionGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 revision IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so revision IDs
// sort by creation time.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
