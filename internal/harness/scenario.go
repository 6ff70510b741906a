package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of array operations with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario.
	// It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Initial seeds a store the array is loaded from.
	// When nil the array has no store and saves are no-ops.
	Initial []string `yaml:"initial,omitempty"`

	// Capacity is the initial capacity of a store-less array.
	// When nil the default capacity is used.
	Capacity *int `yaml:"capacity,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Expect validates the final state.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Step is one operation on the array.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Index is the position for insert, set and get.
	Index *int `yaml:"index,omitempty"`

	// Value is the element for append, insert, set and remove.
	Value string `yaml:"value,omitempty"`

	// Values are the elements for append_all.
	Values []string `yaml:"values,omitempty"`

	// ExpectError is the error kind the step must fail with.
	// Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Want is the element get must return.
	Want *string `yaml:"want,omitempty"`

	// Found is the outcome remove must report.
	Found *bool `yaml:"found,omitempty"`

	// StoreError makes the store reject this save with the given message.
	StoreError string `yaml:"store_error,omitempty"`
}

// Expectation validates the array after all steps ran.
// Nil fields are not checked.
type Expectation struct {
	Elements []string `yaml:"elements,omitempty"`
	Length   *int     `yaml:"length,omitempty"`
	Dirty    *bool    `yaml:"dirty,omitempty"`
	Saves    *int     `yaml:"saves,omitempty"`
}

// Operation constants.
const (
	OpAppend    = "append"
	OpAppendAll = "append_all"
	OpInsert    = "insert"
	OpSet       = "set"
	OpGet       = "get"
	OpRemove    = "remove"
	OpSave      = "save"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Initial != nil && s.Capacity != nil {
		return fmt.Errorf("initial and capacity are mutually exclusive")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, s *Step) error {
	if s.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}

	switch s.Op {
	case OpInsert, OpSet, OpGet:
		if s.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for %s", index, s.Op)
		}
	case OpAppend, OpAppendAll, OpRemove, OpSave:
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}

	if s.Want != nil && s.Op != OpGet {
		return fmt.Errorf("steps[%d]: want is only valid for get", index)
	}
	if s.Found != nil && s.Op != OpRemove {
		return fmt.Errorf("steps[%d]: found is only valid for remove", index)
	}
	if s.StoreError != "" && s.Op != OpSave {
		return fmt.Errorf("steps[%d]: store_error is only valid for save", index)
	}

	switch s.ExpectError {
	case "", KindInvalidArgument, KindNullArgument, KindIndexOutOfRange, KindStore:
	default:
		return fmt.Errorf("steps[%d]: unknown expect_error %q", index, s.ExpectError)
	}

	return nil
}
