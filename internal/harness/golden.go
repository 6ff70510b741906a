package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dynarray/internal/canonical"
)

// Snapshot renders a trace as canonical JSON lines: a header naming the
// scenario followed by one line per event. Keys are sorted, so identical
// traces always produce identical bytes.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	var buf bytes.Buffer

	header, err := canonical.Marshal(map[string]any{"scenario": scenarioName})
	if err != nil {
		return nil, err
	}
	buf.Write(header)
	buf.WriteByte('\n')

	for _, event := range result.Trace {
		line, err := canonical.Marshal(eventMap(event))
		if err != nil {
			return nil, fmt.Errorf("trace seq %d: %w", event.Seq, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	final, err := canonical.Marshal(map[string]any{
		"elements": toAnySlice(result.Elements),
		"saves":    result.Saves,
	})
	if err != nil {
		return nil, err
	}
	buf.Write(final)
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// eventMap converts an event to a map, leaving out unset optional fields.
func eventMap(e TraceEvent) map[string]any {
	m := map[string]any{
		"seq":      e.Seq,
		"op":       e.Op,
		"length":   e.Length,
		"capacity": e.Capacity,
		"dirty":    e.Dirty,
	}
	if e.Index != nil {
		m["index"] = *e.Index
	}
	if e.Value != "" {
		m["value"] = e.Value
	}
	if e.Found != nil {
		m["found"] = *e.Found
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	return m
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can assert on Pass as well.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snapshot)

	return nil
}
