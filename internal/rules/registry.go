package rules

import (
	"github.com/roach88/logicrules/internal/record"
)

// Answers maps prompt keys to raw answers.
type Answers map[string]string

// InputKind describes how a prompt's answer is read.
type InputKind int

const (
	KindFlag InputKind = iota // T/F
	KindNumber
	KindSecret
)

// Prompt is one question a shell asks before evaluating a rule.
type Prompt struct {
	Key      string
	Question string
	Kind     InputKind
}

// Rule evaluates raw answers.
type Rule interface {
	ID() record.RuleID
	Title() string
	Prompts() []Prompt
	Evaluate(a Answers) (Evaluation, error)
}

// Registry holds the rules in menu order.
type Registry struct {
	rules []Rule
}

// NewRegistry builds the five rules configured by p.
func NewRegistry(p Policy) *Registry {
	return &Registry{rules: []Rule{
		attendanceRule{},
		gradingRule{passing: p.PassingGrade},
		loginRule{password: p.Password},
		bonusRule{bonus: p.ParticipationBonus},
		libraryRule{},
	}}
}

// All returns the rules in menu order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Lookup finds a rule by its short name, e.g. "grading".
func (r *Registry) Lookup(name string) (Rule, bool) {
	id, ok := record.ParseRuleID(name)
	if !ok {
		return nil, false
	}
	for _, rule := range r.rules {
		if rule.ID() == id {
			return rule, true
		}
	}
	return nil, false
}
