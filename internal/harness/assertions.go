package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/logicrules/internal/record"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", ev.Seq, describeEvent(ev))
		}
	}

	return buf.String()
}

func describeEvent(ev TraceEvent) string {
	var s string
	if ev.Type == "check" {
		s = fmt.Sprintf("check %s %q", ev.Rule, ev.Subject)
	} else {
		s = fmt.Sprintf("view %q", ev.Subject)
	}
	if ev.Error != "" {
		return s + " -> error " + ev.Error
	}
	if ev.Outcome != nil {
		return fmt.Sprintf("%s -> %t (%s)", s, *ev.Outcome, ev.Detail)
	}
	return s
}

// compareStep checks one executed step against its expect clause.
// Without an expect clause the step only has to succeed.
func compareStep(index int, step FlowStep, ev TraceEvent) []string {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf("flow[%d]: ", index)+fmt.Sprintf(format, args...))
	}

	want := step.Expect
	if want == nil {
		want = &ExpectClause{}
	}

	if ev.Error != want.Error {
		switch {
		case want.Error == "":
			fail("unexpected %s error", ev.Error)
		case ev.Error == "":
			fail("expected %s error, step succeeded", want.Error)
		default:
			fail("expected %s error, got %s", want.Error, ev.Error)
		}
		return errs
	}
	if ev.Error != "" {
		return errs
	}

	if want.Outcome != nil && (ev.Outcome == nil || *ev.Outcome != *want.Outcome) {
		fail("outcome: expected %t, got %s", *want.Outcome, formatOutcome(ev.Outcome))
	}
	if want.Detail != "" && ev.Detail != want.Detail {
		fail("detail: expected %q, got %q", want.Detail, ev.Detail)
	}
	if want.Summary != "" && ev.Summary != want.Summary {
		fail("summary: expected %q, got %q", want.Summary, ev.Summary)
	}
	if want.Output != "" && ev.Output != want.Output {
		fail("output: expected %q, got %q", want.Output, ev.Output)
	}
	return errs
}

func formatOutcome(o *bool) string {
	if o == nil {
		return "none"
	}
	return fmt.Sprintf("%t", *o)
}

// assertRecord checks the subject's row against expected column values
// (subset match).
func assertRecord(recs []record.Record, trace []TraceEvent, a Assertion) error {
	rec, ok := findRecord(recs, a.Subject)
	if !ok {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("record for %q", record.NormalizeSubject(a.Subject)),
			Actual:   "no such record",
			Trace:    trace,
		}
	}

	var mismatches []string
	for _, column := range slices.Sorted(maps.Keys(a.Expect)) {
		want := a.Expect[column]
		got, _ := rec.Get(column)
		if got != want {
			mismatches = append(mismatches, fmt.Sprintf("%s=%q (want %q)", column, got, want))
		}
	}
	if len(mismatches) == 0 {
		return nil
	}

	return &AssertionError{
		Type:     AssertRecord,
		Expected: fmt.Sprintf("%s with %v", rec.Subject, a.Expect),
		Actual:   strings.Join(mismatches, ", "),
		Trace:    trace,
	}
}

// assertNotFound checks that no row matches the subject.
func assertNotFound(recs []record.Record, trace []TraceEvent, a Assertion) error {
	rec, ok := findRecord(recs, a.Subject)
	if !ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertNotFound,
		Expected: fmt.Sprintf("no record for %q", record.NormalizeSubject(a.Subject)),
		Actual:   fmt.Sprintf("record for %q last updated %s", rec.Subject, rec.Timestamp.Format(record.TimestampLayout)),
		Trace:    trace,
	}
}

// assertRecordCount checks the number of rows in the table.
func assertRecordCount(recs []record.Record, trace []TraceEvent, a Assertion) error {
	if len(recs) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordCount,
		Expected: fmt.Sprintf("%d record(s)", a.Count),
		Actual:   fmt.Sprintf("%d record(s)", len(recs)),
		Trace:    trace,
	}
}

// findRecord returns the first row for subject, matching the store's
// lookup rule.
func findRecord(recs []record.Record, subject string) (record.Record, bool) {
	for _, rec := range recs {
		if record.SameSubject(rec.Subject, subject) {
			return rec, true
		}
	}
	return record.Record{}, false
}

// EvaluateAssertions evaluates all assertions against the final table.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, recs []record.Record) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertRecord:
			err = assertRecord(recs, result.Trace, a)
		case AssertNotFound:
			err = assertNotFound(recs, result.Trace, a)
		case AssertRecordCount:
			err = assertRecordCount(recs, result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
