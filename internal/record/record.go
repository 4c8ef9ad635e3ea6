package record

import (
	"maps"
	"slices"
	"time"
)

// TimestampLayout is the wire format of the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Result is one rule's paired outcome and detail.
type Result struct {
	Outcome Outcome
	Detail  string
}

// Record is the stored state for one subject.
type Record struct {
	Timestamp time.Time
	Subject   string
	Results   [ruleCount]Result
}

// New returns a record for subject with every rule field empty.
// The subject is normalized; the timestamp is truncated to the wire precision.
func New(subject string, now time.Time) Record {
	return Record{
		Timestamp: now.Truncate(time.Second),
		Subject:   NormalizeSubject(subject),
	}
}

// Result returns the stored result for a rule.
func (r Record) Result(id RuleID) Result {
	return r.Results[id]
}

// Touch refreshes the last-modified timestamp.
func (r *Record) Touch(now time.Time) {
	r.Timestamp = now.Truncate(time.Second)
}

// Get returns the wire value of a column.
func (r Record) Get(column string) (string, bool) {
	switch column {
	case ColumnTimestamp:
		return r.Timestamp.Format(TimestampLayout), true
	case ColumnSubject:
		return r.Subject, true
	}
	ref, ok := columnIndex[column]
	if !ok {
		return "", false
	}
	res := r.Results[ref.rule]
	if ref.detail {
		return res.Detail, true
	}
	return res.Outcome.String(), true
}

// Field is a column name with its wire value.
type Field struct {
	Column string
	Value  string
}

// Populated returns the rule columns that hold a value, in schema order.
// Timestamp and subject are never included.
func (r Record) Populated() []Field {
	var out []Field
	for _, id := range Rules() {
		res := r.Results[id]
		if res.Outcome.IsSet() {
			out = append(out, Field{Column: id.OutcomeColumn(), Value: res.Outcome.String()})
		}
		if res.Detail != "" {
			out = append(out, Field{Column: id.DetailColumn(), Value: res.Detail})
		}
	}
	return out
}

// Fields is a partial update keyed by wire column name.
type Fields map[string]string

// Validate checks that every named column is a rule column holding a legal
// value, and that each touched rule has both of its columns present.
func (f Fields) Validate() error {
	touched := make(map[RuleID]bool)
	for _, column := range slices.Sorted(maps.Keys(f)) {
		if column == ColumnTimestamp || column == ColumnSubject {
			return &FieldError{Column: column, Reason: "reserved column is managed by the store"}
		}
		ref, ok := columnIndex[column]
		if !ok {
			return &FieldError{Column: column, Reason: "unknown column"}
		}
		if !ref.detail {
			if _, err := ParseOutcome(f[column]); err != nil {
				return &FieldError{Column: column, Reason: err.Error()}
			}
		}
		touched[ref.rule] = true
	}

	for _, id := range Rules() {
		if !touched[id] {
			continue
		}
		if _, ok := f[id.OutcomeColumn()]; !ok {
			return &UnpairedFieldError{Rule: id, Missing: id.OutcomeColumn()}
		}
		if _, ok := f[id.DetailColumn()]; !ok {
			return &UnpairedFieldError{Rule: id, Missing: id.DetailColumn()}
		}
	}
	return nil
}

// Apply merges f into the record. Columns not named in f keep their value.
// Nothing is changed if f is invalid.
func (r *Record) Apply(f Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	for column, value := range f {
		ref := columnIndex[column]
		if ref.detail {
			r.Results[ref.rule].Detail = value
			continue
		}
		// Validated above.
		o, _ := ParseOutcome(value)
		r.Results[ref.rule].Outcome = o
	}
	return nil
}
