package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Golden string // directory of golden trace files
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario-file|scenario-dir>...",
		Short: "Run array scenarios",
		Long: `Run YAML scenarios against an in-memory array and check their
expectations. Directories are searched recursively for .yaml and .yml files.

With --golden, each scenario trace is also compared against
<golden-dir>/<scenario-name>.golden. Add --update to rewrite those files.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  dynarray test ./scenarios
  dynarray test ./scenarios --filter "insert*"
  dynarray test ./scenarios --golden ./golden --update
  dynarray test growth.yaml --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Golden, "golden", "", "directory of golden trace files")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files (requires --golden)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	if opts.Update && opts.Golden == "" {
		return NewExitError(ExitCommandError, CodeInvalidArgument, "--update requires --golden")
	}

	var scenarioFiles []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return NewExitError(ExitCommandError, CodeInvalidArgument, fmt.Sprintf("scenario path not found: %s", path))
		}
		files, err := findScenarioFiles(path, opts.Filter)
		if err != nil {
			return WrapExitError(ExitCommandError, CodeInvalidArgument, "failed to find scenarios", err)
		}
		scenarioFiles = append(scenarioFiles, files...)
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}

	f := opts.formatter(cmd)
	if len(scenarioFiles) == 0 {
		return f.Result(result, func(w io.Writer) {
			fmt.Fprintln(w, "No scenarios found.")
		})
	}

	for _, scenarioFile := range scenarioFiles {
		scenResult := runScenario(cmd, opts, scenarioFile)
		result.Scenarios = append(result.Scenarios, scenResult)

		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if result.Failed > 0 {
			// Reported once by Execute, with the result as details
			return &ExitError{
				Code:    ExitFailure,
				ErrCode: CodeTestFailed,
				Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
				Details: result,
			}
		}
		return f.Success(result)
	}

	return outputTestText(cmd, result)
}

// findScenarioFiles finds all YAML scenario files under path.
// A file path is returned as is when it matches the filter.
func findScenarioFiles(path string, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns the result.
func runScenario(cmd *cobra.Command, opts *TestOptions, scenarioFile string) ScenarioResult {
	name := filepath.Base(scenarioFile)

	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return reportScenario(cmd, opts, ScenarioResult{
			Name:   name,
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		})
	}
	name = scenario.Name

	result, err := harness.RunContext(cmd.Context(), scenario, slog.Default())
	if err != nil {
		return reportScenario(cmd, opts, ScenarioResult{
			Name:   name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		})
	}

	errs := append([]string{}, result.Errors...)
	if opts.Golden != "" {
		if err := checkGolden(opts, scenario, result); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return reportScenario(cmd, opts, ScenarioResult{
		Name:   name,
		Pass:   len(errs) == 0,
		Errors: errs,
	})
}

// reportScenario prints a scenario outcome in text mode and returns it.
func reportScenario(cmd *cobra.Command, opts *TestOptions, r ScenarioResult) ScenarioResult {
	if opts.Format == "json" {
		return r
	}
	w := cmd.OutOrStdout()
	if r.Pass {
		fmt.Fprintf(w, "✓ %s\n", r.Name)
		return r
	}
	fmt.Fprintf(w, "✗ %s\n", r.Name)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	return r
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(goldenDir, scenarioName string) string {
	return filepath.Join(goldenDir, scenarioName+".golden")
}

// checkGolden compares the trace snapshot with the golden file, or writes
// it when updating.
func checkGolden(opts *TestOptions, scenario *harness.Scenario, result *harness.Result) error {
	snapshot, err := harness.Snapshot(scenario.Name, result)
	if err != nil {
		return fmt.Errorf("failed to snapshot trace: %w", err)
	}
	goldenPath := goldenFilePath(opts.Golden, scenario.Name)

	if opts.Update {
		if err := os.MkdirAll(opts.Golden, 0755); err != nil {
			return fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(goldenPath, snapshot, 0644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
		return nil
	}

	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(golden, snapshot) {
		return fmt.Errorf("trace does not match %s (run with --update to regenerate)", goldenPath)
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, CodeTestFailed, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
