package rules

import (
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// Login checks an attempted password against the expected one.
//
// The detail keeps the three sub-conditions user_ok, pass_ok and locked.
// With a single credential they collapse to plain equality: pass_ok
// mirrors user_ok and locked is its negation.
func Login(attempt, expected string) Evaluation {
	userOK := attempt == expected
	passOK := userOK
	locked := !userOK
	success := userOK && passOK && !locked

	category, summary := "login denied", "Login Denied"
	if success {
		category, summary = "login success", "Login Success"
	}

	return Evaluation{
		Rule:    record.Login,
		Outcome: success,
		Detail: fmt.Sprintf("user_ok=%s, pass_ok=%s, locked=%s -> %s",
			formatBool(userOK), formatBool(passOK), formatBool(locked), category),
		Summary: summary,
	}
}

type loginRule struct {
	password string
}

func (loginRule) ID() record.RuleID { return record.Login }

func (loginRule) Title() string { return "Login System Checker" }

func (loginRule) Prompts() []Prompt {
	return []Prompt{
		{Key: "password", Question: "Enter Password", Kind: KindSecret},
	}
}

// Evaluate compares the answer verbatim; surrounding spaces are significant.
func (r loginRule) Evaluate(a Answers) (Evaluation, error) {
	return Login(a["password"], r.password), nil
}
