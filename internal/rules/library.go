package rules

import (
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// Library evaluates validID && !overdue.
func Library(validID, overdue bool) Evaluation {
	allowed := validID && !overdue

	category, summary := "cannot borrow", "Borrowing Denied"
	if allowed {
		category, summary = "can borrow", "Allowed to Borrow"
	}

	return Evaluation{
		Rule:    record.Library,
		Outcome: allowed,
		Detail: fmt.Sprintf("id_valid=%s, overdue=%s -> %s",
			formatBool(validID), formatBool(overdue), category),
		Summary: summary,
	}
}

type libraryRule struct{}

func (libraryRule) ID() record.RuleID { return record.Library }

func (libraryRule) Title() string { return "Library Borrowing Checker" }

func (libraryRule) Prompts() []Prompt {
	return []Prompt{
		{Key: "valid_id", Question: "Does the student have a valid ID? (T/F)", Kind: KindFlag},
		{Key: "overdue", Question: "Does the student have overdue books? (T/F)", Kind: KindFlag},
	}
}

func (libraryRule) Evaluate(a Answers) (Evaluation, error) {
	return Library(ParseFlag(a["valid_id"]), ParseFlag(a["overdue"])), nil
}
