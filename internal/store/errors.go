package store

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt matches any *CorruptStoreError via errors.Is.
	ErrCorrupt = errors.New("corrupt store")

	// ErrIO matches any *IOError via errors.Is.
	ErrIO = errors.New("store i/o failure")
)

// CorruptStoreError reports persisted state that does not fit the schema.
type CorruptStoreError struct {
	// Path is the backend location.
	Path string

	// Line is the 1-based line (CSV) or row (SQLite) number; 0 if unknown.
	Line int

	// Err describes the violation.
	Err error
}

func (e *CorruptStoreError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("corrupt store %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

func (e *CorruptStoreError) Is(target error) bool { return target == ErrCorrupt }

// IOError reports storage that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// IsCorrupt reports whether err is or wraps a *CorruptStoreError.
func IsCorrupt(err error) bool {
	var ce *CorruptStoreError
	return errors.As(err, &ce)
}

// IsIO reports whether err is or wraps an *IOError.
func IsIO(err error) bool {
	var ie *IOError
	return errors.As(err, &ie)
}
