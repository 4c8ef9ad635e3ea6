package record

import "fmt"

// FieldError reports an update that names a column it may not change.
type FieldError struct {
	Column string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Column, e.Reason)
}

// UnpairedFieldError reports an update that writes one of a rule's columns
// without the other.
type UnpairedFieldError struct {
	Rule    RuleID
	Missing string
}

func (e *UnpairedFieldError) Error() string {
	return fmt.Sprintf("rule %s: update is missing paired field %q", e.Rule, e.Missing)
}

// RowError reports a persisted row that does not fit the schema.
type RowError struct {
	Column string // empty when the row as a whole is malformed
	Reason string
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return e.Reason
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}
