package store

import (
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/roach88/dynarray/internal/testutil"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestList opens a text list with deterministic revision IDs.
func createTestList(t *testing.T, s *Store, name string) *List[string] {
	t.Helper()
	l, err := NewList[string](s, name, TextCodec{},
		WithRevisionGenerator(testutil.NewSequentialRevisionGenerator(name)))
	if err != nil {
		t.Fatalf("NewList() failed: %v", err)
	}
	return l
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(items []string, item string) bool {
	return slices.Contains(items, item)
}
