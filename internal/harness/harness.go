package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/dynarray/internal/dynarray"
	"github.com/roach88/dynarray/internal/testutil"
)

// Error kinds reported in traces and matched by expect_error.
const (
	KindInvalidArgument = "invalid_argument"
	KindNullArgument    = "null_argument"
	KindIndexOutOfRange = "index_out_of_range"
	KindStore           = "store"
)

// Harness executes a single scenario.
type Harness struct {
	array  *dynarray.Array[string]
	store  *testutil.RecordingStore[string] // nil when the scenario has no initial contents
	seq    int64
	logger *slog.Logger
}

// Run executes a scenario with a discarded log and returns the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunContext executes a scenario and returns the result.
//
// Execution flow:
// 1. Create the array (from a fresh recording store when initial is set)
// 2. Execute steps, recording a trace event for each
// 3. Check final expectations
//
// A returned error means the scenario could not be set up; step and
// expectation mismatches are reported in Result.Errors.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h := &Harness{logger: logger}

	if err := h.setup(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to set up scenario %q: %w", scenario.Name, err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	result.Elements = h.array.Slice()
	if h.store != nil {
		result.Saves = len(h.store.Saves())
	}

	if scenario.Expect != nil {
		h.checkExpectation(scenario.Expect, result)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

func (h *Harness) setup(ctx context.Context, scenario *Scenario) error {
	switch {
	case scenario.Initial != nil:
		h.store = testutil.NewRecordingStore(scenario.Initial...)
		a, err := dynarray.NewFromStore[string](ctx, h.store)
		if err != nil {
			return err
		}
		h.array = a
	case scenario.Capacity != nil:
		a, err := dynarray.NewWithCapacity[string](*scenario.Capacity)
		if err != nil {
			return err
		}
		h.array = a
	default:
		h.array = dynarray.New[string]()
	}
	return nil
}

// executeStep applies one step and validates its outcome.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	h.seq++
	event := TraceEvent{Seq: h.seq, Op: step.Op, Index: step.Index}

	var err error
	switch step.Op {
	case OpAppend:
		h.array.Append(step.Value)
	case OpAppendAll:
		err = h.array.AppendSlice(step.Values)
	case OpInsert:
		err = h.array.Insert(*step.Index, step.Value)
	case OpSet:
		err = h.array.Set(*step.Index, step.Value)
	case OpGet:
		var v string
		v, err = h.array.Get(*step.Index)
		if err == nil {
			event.Value = v
			if step.Want != nil && v != *step.Want {
				result.AddError(fmt.Sprintf("step %d (%s): got %q, want %q", i, step.Op, v, *step.Want))
			}
		}
	case OpRemove:
		found := h.array.Remove(step.Value)
		event.Found = &found
		if step.Found != nil && found != *step.Found {
			result.AddError(fmt.Sprintf("step %d (%s %q): found=%t, want %t", i, step.Op, step.Value, found, *step.Found))
		}
	case OpSave:
		err = h.save(ctx, step)
	}

	kind := ErrorKind(err)
	event.Error = kind
	if kind != step.ExpectError {
		result.AddError(fmt.Sprintf("step %d (%s): error %q, want %q", i, step.Op, kind, step.ExpectError))
	}

	event.Length = h.array.Len()
	event.Capacity = h.array.Cap()
	event.Dirty = h.array.Dirty()
	result.AddTrace(event)

	h.logger.Debug("step executed",
		"seq", event.Seq,
		"op", step.Op,
		"length", event.Length,
		"capacity", event.Capacity,
		"error", kind,
	)
}

func (h *Harness) save(ctx context.Context, step Step) error {
	if h.store != nil && step.StoreError != "" {
		h.store.SaveErr = errors.New(step.StoreError)
		defer func() { h.store.SaveErr = nil }()
	}
	return h.array.Save(ctx)
}

func (h *Harness) checkExpectation(want *Expectation, result *Result) {
	if want.Elements != nil && !slices.Equal(result.Elements, want.Elements) {
		result.AddError(fmt.Sprintf("elements: got %q, want %q", result.Elements, want.Elements))
	}
	if want.Length != nil && h.array.Len() != *want.Length {
		result.AddError(fmt.Sprintf("length: got %d, want %d", h.array.Len(), *want.Length))
	}
	if want.Dirty != nil && h.array.Dirty() != *want.Dirty {
		result.AddError(fmt.Sprintf("dirty: got %t, want %t", h.array.Dirty(), *want.Dirty))
	}
	if want.Saves != nil && result.Saves != *want.Saves {
		result.AddError(fmt.Sprintf("saves: got %d, want %d", result.Saves, *want.Saves))
	}
}

// ErrorKind classifies err for traces. Errors that are not dynarray
// argument errors are attributed to the store. Returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dynarray.ErrIndexOutOfRange):
		return KindIndexOutOfRange
	case errors.Is(err, dynarray.ErrNullArgument):
		return KindNullArgument
	case errors.Is(err, dynarray.ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindStore
	}
}
