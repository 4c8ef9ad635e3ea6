package record

import "fmt"

// Outcome is a tri-state rule result. The zero value is Unset.
type Outcome uint8

const (
	Unset Outcome = iota
	True
	False
)

// Wire literals for outcomes.
const (
	literalTrue  = "True"
	literalFalse = "False"
)

// OutcomeOf converts a boolean into a set Outcome.
func OutcomeOf(b bool) Outcome {
	if b {
		return True
	}
	return False
}

// Bool returns the outcome's value and whether it is set.
func (o Outcome) Bool() (value bool, ok bool) {
	switch o {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// IsSet reports whether the rule has been evaluated.
func (o Outcome) IsSet() bool {
	return o == True || o == False
}

// String returns the wire literal: "", "True" or "False".
func (o Outcome) String() string {
	switch o {
	case True:
		return literalTrue
	case False:
		return literalFalse
	default:
		return ""
	}
}

// ParseOutcome parses a wire literal. Only "", "True" and "False" are accepted.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "":
		return Unset, nil
	case literalTrue:
		return True, nil
	case literalFalse:
		return False, nil
	default:
		return Unset, fmt.Errorf("invalid outcome literal %q: want \"\", %q or %q", s, literalTrue, literalFalse)
	}
}
