package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/dynarray/internal/testutil"
)

// cliRunner executes commands against one temporary database with
// deterministic revision IDs.
type cliRunner struct {
	t    *testing.T
	db   string
	revs *testutil.SequentialRevisionGenerator
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{
		t:    t,
		db:   filepath.Join(t.TempDir(), "test.db"),
		revs: testutil.NewSequentialRevisionGenerator("rev"),
	}
}

// run executes args with --db pointing at the runner database and returns
// stdout.
func (r *cliRunner) run(args ...string) (string, error) {
	r.t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	opts := &RootOptions{RevisionGenerator: r.revs}
	err := execute(context.Background(), opts, append(args, "--db", r.db), stdout, stderr)
	return stdout.String(), err
}
