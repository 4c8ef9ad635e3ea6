package engine

import (
	"errors"
	"fmt"
)

// CheckError represents a request the engine refused before evaluation.
type CheckError struct {
	// Code identifies the error category.
	Code CheckErrorCode

	// Message is a human-readable description.
	Message string

	// Rule is the requested rule name, if any.
	Rule string
}

// CheckErrorCode categorizes refused requests.
type CheckErrorCode string

const (
	// ErrCodeUnknownRule indicates the named rule does not exist.
	ErrCodeUnknownRule CheckErrorCode = "UNKNOWN_RULE"

	// ErrCodeEmptySubject indicates the subject key is blank after normalization.
	ErrCodeEmptySubject CheckErrorCode = "EMPTY_SUBJECT"
)

// Error implements the error interface.
func (e *CheckError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule=%s)", e.Code, e.Message, e.Rule)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownRule returns true if the error is an unknown rule error.
// Uses errors.As to handle wrapped errors.
func IsUnknownRule(err error) bool {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownRule
	}
	return false
}

// IsEmptySubject returns true if the error is an empty subject error.
func IsEmptySubject(err error) bool {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeEmptySubject
	}
	return false
}

func newUnknownRuleError(name string) *CheckError {
	return &CheckError{
		Code:    ErrCodeUnknownRule,
		Message: "no rule with this name",
		Rule:    name,
	}
}

func newEmptySubjectError() *CheckError {
	return &CheckError{
		Code:    ErrCodeEmptySubject,
		Message: "subject name is required",
	}
}
