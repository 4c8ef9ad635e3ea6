package rules

import (
	"github.com/roach88/logicrules/internal/record"
)

// Evaluation is the result of one rule evaluation.
type Evaluation struct {
	Rule record.RuleID

	// Outcome is the value stored in the rule's outcome column.
	Outcome bool

	// Detail is stored in the rule's detail column. It names every input
	// and the resulting category.
	Detail string

	// Summary is a one-line result for display, e.g. "Eligible".
	Summary string
}

// Fields returns the paired outcome/detail update for the store.
func (e Evaluation) Fields() record.Fields {
	return record.Fields{
		e.Rule.OutcomeColumn(): record.OutcomeOf(e.Outcome).String(),
		e.Rule.DetailColumn():  e.Detail,
	}
}
