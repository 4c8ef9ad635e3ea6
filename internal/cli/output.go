package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/logicrules/internal/config"
	"github.com/roach88/logicrules/internal/engine"
	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario failure or failed store check
	ExitCommandError = 2 // Command error (invalid input, unreadable store, bad config, etc.)
)

// Error codes reported in CLI responses.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeInvalidInput = "E002" // Answer could not be parsed
	ErrCodeBadRequest   = "E003" // Unknown rule or blank subject
	ErrCodeCorruptStore = "E004" // Stored table cannot be read
	ErrCodeStoreIO      = "E005" // Storage read/write failure
	ErrCodeConfig       = "E006" // Configuration file invalid
	ErrCodeNotFound     = "E007" // Path not found
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string    `json:"status"`            // "ok" or "error"
	Data    any       `json:"data,omitempty"`    // success payload
	Error   *CLIError `json:"error,omitempty"`   // error details
	Session string    `json:"session,omitempty"` // engine session, for matching log lines
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// Text output prints data with fmt.Fprint, so callers pass preformatted text.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprint(f.Writer, data)
	return err
}

// SuccessJSON outputs data as a JSON response regardless of the text form.
func (f *OutputFormatter) SuccessJSON(data any, session string) error {
	return f.encode(CLIResponse{Status: "ok", Data: data, Session: session})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Fail reports err through the formatter and returns the matching ExitError.
// Every failure classified here is a command error.
func (f *OutputFormatter) Fail(err error) error {
	code := ErrorCode(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}

// ErrorCode maps an error from the lower layers to a CLI error code.
func ErrorCode(err error) string {
	var (
		fieldErr      *record.FieldError
		unpairedField *record.UnpairedFieldError
		invalidConfig *config.ValidationError
	)
	switch {
	case rules.IsInvalidInput(err):
		return ErrCodeInvalidInput
	case engine.IsUnknownRule(err), engine.IsEmptySubject(err):
		return ErrCodeBadRequest
	case errors.As(err, &fieldErr), errors.As(err, &unpairedField):
		return ErrCodeBadRequest
	case store.IsCorrupt(err):
		return ErrCodeCorruptStore
	case store.IsIO(err):
		return ErrCodeStoreIO
	case errors.As(err, &invalidConfig):
		return ErrCodeConfig
	default:
		return ErrCodeGeneric
	}
}
