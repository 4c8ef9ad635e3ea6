package harness

import (
	"github.com/roach88/logicrules/internal/view"
)

// TraceEvent records one executed flow step.
type TraceEvent struct {
	Seq     int    `json:"seq"`
	Type    string `json:"type"` // "check" or "view"
	Rule    string `json:"rule,omitempty"`
	Subject string `json:"subject"`
	Outcome *bool  `json:"outcome,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Summary string `json:"summary,omitempty"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"` // error kind, see the Err* constants
	Time    string `json:"time"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains every flow step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Records is the final table, in table order.
	Records []view.Document `json:"records"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Records: []view.Document{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends ev to the trace with the next sequence number.
func (r *Result) addEvent(ev TraceEvent) TraceEvent {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
	return ev
}
