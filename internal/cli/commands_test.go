package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCommands_Golden(t *testing.T) {
	r := newCLIRunner(t)
	g := newGoldie(t)

	out, err := r.run("append", "1", "two", `{"b":1,"a":[true]}`)
	require.NoError(t, err)
	g.Assert(t, "append_text", []byte(out))

	out, err = r.run("insert", "0", "zero")
	require.NoError(t, err)
	g.Assert(t, "insert_text", []byte(out))

	out, err = r.run("list")
	require.NoError(t, err)
	g.Assert(t, "list_text", []byte(out))

	out, err = r.run("list", "--format", "json")
	require.NoError(t, err)
	g.Assert(t, "list_json", []byte(out))

	out, err = r.run("history")
	require.NoError(t, err)
	g.Assert(t, "history_text", []byte(out))

	out, err = r.run("info")
	require.NoError(t, err)
	g.Assert(t, "info_text", []byte(out))

	out, err = r.run("info", "--format", "json")
	require.NoError(t, err)
	g.Assert(t, "info_json", []byte(out))
}

func TestAppend_GrowsOnFirstSave(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("append", "a", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   MutationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, MutationResult{List: "default", Length: 1, Capacity: 1}, resp.Data)

	// Loading three values gives an exact fit, so one more append doubles
	_, err = r.run("append", "b", "c")
	require.NoError(t, err)
	out, err = r.run("append", "d", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, MutationResult{List: "default", Length: 4, Capacity: 6}, resp.Data)
}

func TestAppend_InvalidValue(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("append", "1.5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E001]")

	out, err = r.run("lists")
	require.NoError(t, err)
	assert.Equal(t, "No lists found.\n", out)
}

func TestGet(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a", `{"k":"v"}`)
	require.NoError(t, err)

	out, err := r.run("get", "1")
	require.NoError(t, err)
	assert.Equal(t, "{\"k\":\"v\"}\n", out)

	out, err = r.run("get", "1", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","data":{"list":"default","index":1,"value":{"k":"v"}}}`+"\n", out)
}

func TestGet_OutOfRange(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a")
	require.NoError(t, err)

	out, err := r.run("get", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E002]: index out of range\n", out)

	out, err = r.run("get", "5", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeIndexOutOfRange, resp.Error.Code)
	assert.Equal(t, "get: index 5 out of range [0, 1)", resp.Error.Details)
}

func TestGet_BadIndex(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("get", "first")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `Error [E001]: invalid index "first"`)
}

func TestInsert_OutOfRangeLeavesListUnchanged(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a")
	require.NoError(t, err)

	_, err = r.run("insert", "2", "b")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Inserting at the length appends
	_, err = r.run("insert", "1", "b")
	require.NoError(t, err)

	out, err := r.run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "rev-0002")
	assert.NotContains(t, out, "rev-0003")

	out, err = r.run("list")
	require.NoError(t, err)
	assert.Equal(t, "0\t\"a\"\n1\t\"b\"\n", out)
}

func TestSet(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a", "b")
	require.NoError(t, err)

	out, err := r.run("set", "1", "42")
	require.NoError(t, err)
	assert.Equal(t, "Set default[1] = 42\n", out)

	out, err = r.run("list")
	require.NoError(t, err)
	assert.Equal(t, "0\t\"a\"\n1\t42\n", out)

	_, err = r.run("set", "2", "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRemove_MatchesCanonicalForm(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", `{"a":2,"b":1}`, "x", `{"a":2,"b":1}`)
	require.NoError(t, err)

	out, err := r.run("remove", `{ "b": 1, "a": 2 }`)
	require.NoError(t, err)
	assert.Equal(t, "Removed {\"a\":2,\"b\":1} from default (length 2)\n", out)

	out, err = r.run("list")
	require.NoError(t, err)
	assert.Equal(t, "0\t\"x\"\n1\t{\"a\":2,\"b\":1}\n", out)
}

func TestRemove_NotFound(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a")
	require.NoError(t, err)

	out, err := r.run("remove", "b")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E004]: value \"b\" not found\n", out)

	// Nothing changed, so nothing was saved
	out, err = r.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "Revisions: 1")
}

func TestList_Empty(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("list", "--list", "nothing")
	require.NoError(t, err)
	assert.Equal(t, "List nothing is empty.\n", out)

	out, err = r.run("list", "--list", "nothing", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","data":{"list":"nothing","elements":[]}}`+"\n", out)
}

func TestReadsDoNotCreateRevisions(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a")
	require.NoError(t, err)

	for _, args := range [][]string{{"list"}, {"get", "0"}, {"info"}, {"lists"}} {
		_, err := r.run(args...)
		require.NoError(t, err, args)
	}

	out, err := r.run("history", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []HistoryEntry{{Seq: 1, ID: "rev-0001", Count: 1}}, resp.Data.Revisions)
}

func TestLists(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "--list", "beta", "1", "2")
	require.NoError(t, err)
	_, err = r.run("append", "--list", "alpha", "1")
	require.NoError(t, err)

	out, err := r.run("lists")
	require.NoError(t, err)
	assert.Equal(t, "NAME                 LENGTH\nalpha                1\nbeta                 2\n", out)
}

func TestHistory_UnknownList(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("history", "--list", "ghost")
	require.NoError(t, err)
	assert.Equal(t, "No revisions for ghost.\n", out)
}

func TestDrop(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run("append", "a")
	require.NoError(t, err)

	out, err := r.run("drop")
	require.NoError(t, err)
	assert.Equal(t, "Dropped default\n", out)

	out, err = r.run("drop")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E004]: list default not found\n", out)

	out, err = r.run("history")
	require.NoError(t, err)
	assert.Equal(t, "No revisions for default.\n", out)
}
