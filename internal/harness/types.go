package harness

// TraceEvent records one executed step and the array state after it.
type TraceEvent struct {
	Seq      int64  `json:"seq"`
	Op       string `json:"op"`
	Index    *int   `json:"index,omitempty"`
	Value    string `json:"value,omitempty"` // element returned by get
	Found    *bool  `json:"found,omitempty"` // remove outcome
	Error    string `json:"error,omitempty"` // error kind, see ErrorKind
	Length   int    `json:"length"`
	Capacity int    `json:"capacity"`
	Dirty    bool   `json:"dirty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step and final expectation matched.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains mismatch messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Elements is the final array content.
	Elements []string `json:"elements"`

	// Saves is the number of SaveAll calls the store received.
	Saves int `json:"saves"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		Elements: []string{},
	}
}

// AddError adds a mismatch message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
