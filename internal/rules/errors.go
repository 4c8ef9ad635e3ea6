package rules

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a raw answer that could not be parsed.
// It aborts only the evaluation it belongs to.
type InvalidInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// IsInvalidInput reports whether err is or wraps an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
