package rules

import (
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// Illustrative attendance figures shown in the detail text. They tell the
// two branches apart and are not measured values.
const (
	attendanceOnTime = 82.5
	attendanceLate   = 70.0
)

// Attendance evaluates late => excuse.
func Attendance(late, excuse bool) Evaluation {
	eligible := implies(late, excuse)

	figure := attendanceOnTime
	if late {
		figure = attendanceLate
	}

	category, summary := "not eligible", "Not Eligible"
	if eligible {
		category, summary = "eligible", "Eligible"
	}

	return Evaluation{
		Rule:    record.Attendance,
		Outcome: eligible,
		Detail:  fmt.Sprintf("attendance=%s -> %s", formatNumber(figure), category),
		Summary: summary,
	}
}

// implies is material implication: p => q.
func implies(p, q bool) bool {
	return !p || q
}

type attendanceRule struct{}

func (attendanceRule) ID() record.RuleID { return record.Attendance }

func (attendanceRule) Title() string { return "Attendance Rule Checker" }

func (attendanceRule) Prompts() []Prompt {
	return []Prompt{
		{Key: "late", Question: "Is the student late? (T/F)", Kind: KindFlag},
		{Key: "excuse", Question: "Did the student bring an excuse letter (T/F)", Kind: KindFlag},
	}
}

func (attendanceRule) Evaluate(a Answers) (Evaluation, error) {
	return Attendance(ParseFlag(a["late"]), ParseFlag(a["excuse"])), nil
}
