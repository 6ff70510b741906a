package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dynarray/internal/dynarray"
)

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Steps: []Step{
			{Op: OpAppend, Value: "a"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"a"}, result.Elements)
	assert.Equal(t, 0, result.Saves)

	require.Len(t, result.Trace, 1)
	event := result.Trace[0]
	assert.Equal(t, int64(1), event.Seq)
	assert.Equal(t, OpAppend, event.Op)
	assert.Equal(t, 1, event.Length)
	assert.Equal(t, dynarray.DefaultCapacity, event.Capacity)
	assert.True(t, event.Dirty)
	assert.Empty(t, event.Error)
}

func TestRun_SequenceNumbersAreDeterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "seq",
		Description: "Sequence numbers start at 1 per run",
		Steps: []Step{
			{Op: OpAppend, Value: "a"},
			{Op: OpAppend, Value: "b"},
			{Op: OpGet, Index: intPtr(1)},
		},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	for i, event := range first.Trace {
		assert.Equal(t, int64(i+1), event.Seq)
	}
	assert.Equal(t, "b", first.Trace[2].Value)
}

func TestRun_StepMismatchesAreReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Each kind of step expectation can fail",
		Initial:     []string{"a"},
		Steps: []Step{
			{Op: OpGet, Index: intPtr(0), Want: stringPtr("b")},
			{Op: OpRemove, Value: "zz", Found: boolPtr(true)},
			{Op: OpSet, Index: intPtr(5), Value: "x"},
			{Op: OpAppend, Value: "c", ExpectError: KindStore},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, `step 0 (get): got "a", want "b"`, result.Errors[0])
	assert.Equal(t, `step 1 (remove "zz"): found=false, want true`, result.Errors[1])
	assert.Equal(t, `step 2 (set): error "index_out_of_range", want ""`, result.Errors[2])
	assert.Equal(t, `step 3 (append): error "", want "store"`, result.Errors[3])
}

func TestRun_ExpectationMismatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "final",
		Description: "Final expectations are checked after all steps",
		Initial:     []string{"a"},
		Steps: []Step{
			{Op: OpAppend, Value: "b"},
		},
		Expect: &Expectation{
			Elements: []string{"a"},
			Length:   intPtr(1),
			Dirty:    boolPtr(false),
			Saves:    intPtr(1),
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		`elements: got ["a" "b"], want ["a"]`,
		"length: got 2, want 1",
		"dirty: got true, want false",
		"saves: got 0, want 1",
	}, result.Errors)
}

func TestRun_StoreErrorOnlyAffectsOneSave(t *testing.T) {
	scenario := &Scenario{
		Name:        "store_error",
		Description: "Injected store errors are cleared after the step",
		Initial:     []string{},
		Steps: []Step{
			{Op: OpAppend, Value: "a"},
			{Op: OpSave, StoreError: "disk full", ExpectError: KindStore},
			{Op: OpSave},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, 2, result.Saves)
	assert.True(t, result.Trace[1].Dirty)
	assert.False(t, result.Trace[2].Dirty)
}

func TestRun_WithoutStoreSaveIsNoop(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_store",
		Description: "Saving an array without a store keeps it dirty",
		Capacity:    intPtr(1),
		Steps: []Step{
			{Op: OpAppend, Value: "a"},
			{Op: OpSave, StoreError: "ignored"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, 0, result.Saves)
	assert.True(t, result.Trace[1].Dirty)
	assert.Equal(t, 1, result.Trace[1].Capacity)
}

func TestRun_InvalidCapacity(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_capacity",
		Description: "Non-positive capacity cannot be constructed",
		Capacity:    intPtr(0),
		Steps:       []Step{{Op: OpAppend, Value: "a"}},
	}

	result, err := Run(scenario)
	assert.Nil(t, result)
	require.ErrorIs(t, err, dynarray.ErrInvalidArgument)
	assert.Contains(t, err.Error(), `"bad_capacity"`)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{dynarray.ErrInvalidArgument, KindInvalidArgument},
		{dynarray.ErrNullArgument, KindNullArgument},
		{&dynarray.IndexError{Op: "get", Index: 3, Length: 1}, KindIndexOutOfRange},
		{fmt.Errorf("wrapped: %w", dynarray.ErrNullArgument), KindNullArgument},
		{errors.New("disk full"), KindStore},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%v", tt.err)
	}
}
