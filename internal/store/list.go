package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/dynarray/internal/dynarray"
)

// ErrEmptyListName is returned when a list is opened without a name.
var ErrEmptyListName = errors.New("list name must not be empty")

// List is a named list in a Store. It implements dynarray.Store[T].
type List[T any] struct {
	store *Store
	name  string
	codec Codec[T]
	revs  RevisionGenerator
}

var _ dynarray.Store[string] = (*List[string])(nil)

// ListOption configures a List.
type ListOption func(*listOptions)

type listOptions struct {
	revs RevisionGenerator
}

// WithRevisionGenerator overrides the revision ID generator.
// Defaults to UUIDv7Generator.
func WithRevisionGenerator(gen RevisionGenerator) ListOption {
	return func(o *listOptions) {
		o.revs = gen
	}
}

// NewList returns the list called name, encoding elements with codec.
// The list is created on its first save.
func NewList[T any](s *Store, name string, codec Codec[T], opts ...ListOption) (*List[T], error) {
	if name == "" {
		return nil, ErrEmptyListName
	}
	o := listOptions{revs: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &List[T]{store: s, name: name, codec: codec, revs: o.revs}, nil
}

// Name returns the list name.
func (l *List[T]) Name() string {
	return l.name
}

// LoadAll returns the list elements ordered by position.
// An unknown list loads as empty.
func (l *List[T]) LoadAll(ctx context.Context) ([]T, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT value FROM elements
		WHERE list = ?
		ORDER BY position ASC
	`, l.name)
	if err != nil {
		return nil, fmt.Errorf("load list %q: %w", l.name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("load list %q: scan: %w", l.name, err)
		}
		v, err := l.codec.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("load list %q: position %d: %w", l.name, len(items), err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load list %q: iterate: %w", l.name, err)
	}

	slog.Debug("list loaded", "list", l.name, "count", len(items))
	return items, nil
}

// SaveAll replaces the list elements with items and records a revision.
// All writes happen in one transaction.
func (l *List[T]) SaveAll(ctx context.Context, items []T) error {
	// Encode before opening the transaction so codec errors never hold the writer
	values := make([]string, len(items))
	for i, item := range items {
		text, err := l.codec.Encode(item)
		if err != nil {
			return fmt.Errorf("save list %q: position %d: %w", l.name, i, err)
		}
		values[i] = text
	}

	tx, err := l.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save list %q: begin tx: %w", l.name, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lists (name, length) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET length = excluded.length
	`, l.name, len(values))
	if err != nil {
		return fmt.Errorf("save list %q: upsert list: %w", l.name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE list = ?`, l.name); err != nil {
		return fmt.Errorf("save list %q: clear elements: %w", l.name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (list, position, value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save list %q: prepare: %w", l.name, err)
	}
	defer stmt.Close()

	for i, text := range values {
		if _, err := stmt.ExecContext(ctx, l.name, i, text); err != nil {
			return fmt.Errorf("save list %q: insert position %d: %w", l.name, i, err)
		}
	}

	var seq int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM revisions WHERE list = ?
	`, l.name).Scan(&seq)
	if err != nil {
		return fmt.Errorf("save list %q: next seq: %w", l.name, err)
	}

	revID := l.revs.Generate()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO revisions (id, list, seq, count) VALUES (?, ?, ?, ?)
	`, revID, l.name, seq, len(values))
	if err != nil {
		return fmt.Errorf("save list %q: record revision: %w", l.name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save list %q: commit: %w", l.name, err)
	}

	slog.Debug("list saved", "list", l.name, "count", len(values), "revision", revID, "seq", seq)
	return nil
}
