package rules

import (
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// Bonus adds the participation bonus to a base grade. There is no pass/fail:
// the stored outcome is the participation flag itself.
func Bonus(participated bool, base, bonus float64) Evaluation {
	awarded := 0.0
	if participated {
		awarded = bonus
	}
	final := base + awarded

	return Evaluation{
		Rule:    record.Bonus,
		Outcome: participated,
		Detail: fmt.Sprintf("participated=%s, base=%s -> bonus %s, final=%s",
			formatBool(participated), formatNumber(base), formatNumber(awarded), formatNumber(final)),
		Summary: "Final grade = " + formatNumber(final),
	}
}

type bonusRule struct {
	bonus float64
}

func (bonusRule) ID() record.RuleID { return record.Bonus }

func (bonusRule) Title() string { return "Bonus Points Checker" }

func (bonusRule) Prompts() []Prompt {
	return []Prompt{
		{Key: "participated", Question: "Did the student participate? (T/F)", Kind: KindFlag},
		{Key: "base", Question: "Enter base grade", Kind: KindNumber},
	}
}

func (r bonusRule) Evaluate(a Answers) (Evaluation, error) {
	base, err := ParseNumber("base grade", a["base"])
	if err != nil {
		return Evaluation{}, err
	}
	return Bonus(ParseFlag(a["participated"]), base, r.bonus), nil
}
