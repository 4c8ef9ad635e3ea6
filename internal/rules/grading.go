package rules

import (
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// Grading evaluates grade >= passing.
func Grading(grade, passing float64) Evaluation {
	passed := grade >= passing

	category, summary := "fail", "Fail"
	if passed {
		category, summary = "pass", "Pass"
	}

	return Evaluation{
		Rule:    record.Grading,
		Outcome: passed,
		Detail:  fmt.Sprintf("grade=%s -> %s", formatNumber(grade), category),
		Summary: summary,
	}
}

type gradingRule struct {
	passing float64
}

func (gradingRule) ID() record.RuleID { return record.Grading }

func (gradingRule) Title() string { return "Grading Rule Checker" }

func (gradingRule) Prompts() []Prompt {
	return []Prompt{
		{Key: "grade", Question: "Enter Student Grade", Kind: KindNumber},
	}
}

func (r gradingRule) Evaluate(a Answers) (Evaluation, error) {
	grade, err := ParseGrade(a["grade"])
	if err != nil {
		return Evaluation{}, err
	}
	return Grading(grade, r.passing), nil
}
