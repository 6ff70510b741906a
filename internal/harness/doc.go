// Package harness runs scripted scenarios against a dynamic array.
//
// Scenarios exercise construction, mutation, lookup and persistence the same
// way a caller would, and record a trace of the array state after every step
// so behavior can be pinned down with golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	initial: ["a", "b"]      # store contents; omit for an array without a store
//	capacity: 4              # initial capacity when there is no store
//	steps:
//	  - op: append
//	    value: c
//	  - op: insert
//	    index: 0
//	    value: z
//	  - op: get
//	    index: 9
//	    expect_error: index_out_of_range
//	  - op: remove
//	    value: b
//	    found: true
//	  - op: save
//	expect:
//	  elements: ["z", "a", "c"]
//	  length: 3
//	  saves: 1
//
// # Operations
//
//   - append: Append value
//   - append_all: AppendSlice values (an absent list is a null argument)
//   - insert: Insert value at index
//   - set: Set index to value
//   - get: Get index, optionally checked against want
//   - remove: Remove value, optionally checked against found
//   - save: Save to the scenario store, optionally failing with store_error
//
// # Deterministic Testing
//
// Every step gets a sequence number starting at 1 and the store is an
// in-memory recorder, so the same scenario always yields an identical trace.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/growth.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
