package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "dynarray", cmd.Use)
	assert.Contains(t, cmd.Long, "SQLite")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"append", "insert", "set", "get", "remove", "list", "info", "lists", "history", "drop", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "list"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Empty(t, flag.DefValue, name)
	}
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	for _, name := range []string{"golden", "update", "filter"} {
		assert.NotNil(t, testCmd.Flags().Lookup(name), name)
	}
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("--format", "invalid", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
	assert.Contains(t, out, "Error [E001]")
}

func TestExecute_UnknownCommand(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("frobnicate")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E001]")
	assert.Contains(t, out, "unknown command")
}

func TestExecute_WrongArgCount(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("insert", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "accepts 2 arg")
}

func TestExecute_InvalidConfig(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.run("--list", "has spaces", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestExecute_ConfigFile(t *testing.T) {
	r := newCLIRunner(t)
	path := filepath.Join(t.TempDir(), "dynarray.yaml")
	require.NoError(t, os.WriteFile(path, []byte("list: from-file\nformat: json\n"), 0644))

	out, err := r.run("--config", path, "append", "1")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "from-file", resp.Data.(map[string]any)["list"])
}

func TestExecute_EnvironmentSelectsList(t *testing.T) {
	t.Setenv("DYNARRAY_LIST", "from-env")
	r := newCLIRunner(t)

	_, err := r.run("append", "1")
	require.NoError(t, err)

	// Flag beats environment
	_, err = r.run("--list", "from-flag", "append", "2")
	require.NoError(t, err)

	out, err := r.run("lists")
	require.NoError(t, err)
	assert.Contains(t, out, "from-env")
	assert.Contains(t, out, "from-flag")
}

func TestExecute_VerboseLogsToStderr(t *testing.T) {
	r := newCLIRunner(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	opts := &RootOptions{RevisionGenerator: r.revs}
	err := execute(context.Background(), opts, []string{"-v", "--db", r.db, "append", "1"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "level=DEBUG")
	assert.Contains(t, stderr.String(), "list saved")
	assert.NotContains(t, stdout.String(), "level=")
}
