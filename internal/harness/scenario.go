package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/store"
)

// Scenario defines an end-to-end check of the rule system.
// A scenario seeds the table, runs a flow of rule checks and lookups, and
// asserts on what was stored.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Backend selects the storage backend ("csv" or "sqlite").
	// Empty selects csv.
	Backend string `yaml:"backend,omitempty"`

	// Policy overrides individual policy values. Unset values keep the
	// defaults.
	Policy *PolicyOverride `yaml:"policy,omitempty"`

	// Setup contains rows written straight to the store before the flow.
	// Setup rows are assumed to be valid.
	Setup []SetupStep `yaml:"setup,omitempty"`

	// Flow contains the steps under test, run in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final table.
	// Supported types: record, not_found, record_count
	Assertions []Assertion `yaml:"assertions"`
}

// PolicyOverride replaces selected rules.Policy values.
type PolicyOverride struct {
	PassingGrade       *float64 `yaml:"passing_grade,omitempty"`
	ParticipationBonus *float64 `yaml:"participation_bonus,omitempty"`
	Password           *string  `yaml:"password,omitempty"`
}

// SetupStep upserts raw column values for a subject.
type SetupStep struct {
	Subject string            `yaml:"subject"`
	Fields  map[string]string `yaml:"fields"`
}

// FlowStep is either a rule check or a lookup.
type FlowStep struct {
	// Check is the rule to evaluate (e.g. "grading"). Exclusive with View.
	Check string `yaml:"check,omitempty"`

	// View is the subject to look up. Exclusive with Check.
	View string `yaml:"view,omitempty"`

	// Subject is the subject key for a check.
	Subject string `yaml:"subject,omitempty"`

	// Answers are the raw answers for a check, keyed by prompt.
	Answers map[string]string `yaml:"answers,omitempty"`

	// Expect specifies the expected step result.
	// If nil, the step only has to succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected step behavior. Only the fields that
// are set are compared.
type ExpectClause struct {
	// Outcome is the expected rule outcome.
	Outcome *bool `yaml:"outcome,omitempty"`

	// Detail is the expected detail text.
	Detail string `yaml:"detail,omitempty"`

	// Summary is the expected one-line result.
	Summary string `yaml:"summary,omitempty"`

	// Error is the expected error kind. See the Err* constants.
	Error string `yaml:"error,omitempty"`

	// Output is the expected rendered view.
	Output string `yaml:"output,omitempty"`
}

// Assertion validates the final table.
type Assertion struct {
	// Type specifies the assertion type:
	// - "record": the subject's row has the expected column values
	// - "not_found": no row exists for the subject
	// - "record_count": the table has exactly Count rows
	Type string `yaml:"type"`

	// Subject is the subject key (used by record and not_found).
	Subject string `yaml:"subject,omitempty"`

	// Expect contains expected column values (used by record).
	// Subset match; an empty string asserts the column is empty.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Count is the expected number of rows (used by record_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRecord      = "record"
	AssertNotFound    = "not_found"
	AssertRecordCount = "record_count"
)

// Error kinds for ExpectClause.Error.
const (
	ErrInvalidInput = "invalid_input"
	ErrUnknownRule  = "unknown_rule"
	ErrEmptySubject = "empty_subject"
	ErrCorruptStore = "corrupt_store"
	ErrStoreIO      = "store_io"
	ErrOther        = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Backend {
	case "", store.BackendCSV, store.BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", store.BackendCSV, store.BackendSQLite, s.Backend)
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if step.Subject == "" {
			return fmt.Errorf("setup[%d]: subject is required", i)
		}
		if err := record.Fields(step.Fields).Validate(); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *FlowStep) error {
	switch {
	case step.Check != "" && step.View != "":
		return fmt.Errorf("flow[%d]: check and view are mutually exclusive", index)
	case step.Check == "" && step.View == "":
		return fmt.Errorf("flow[%d]: one of check or view is required", index)
	case step.View != "" && (step.Subject != "" || step.Answers != nil):
		return fmt.Errorf("flow[%d]: view takes no subject or answers", index)
	}

	if step.Expect == nil {
		return nil
	}
	switch step.Expect.Error {
	case "", ErrInvalidInput, ErrUnknownRule, ErrEmptySubject, ErrCorruptStore, ErrStoreIO, ErrOther:
	default:
		return fmt.Errorf("flow[%d].expect: unknown error kind %q", index, step.Expect.Error)
	}
	if step.View != "" && (step.Expect.Outcome != nil || step.Expect.Detail != "" || step.Expect.Summary != "") {
		return fmt.Errorf("flow[%d].expect: view steps only support output and error", index)
	}
	if step.Check != "" && step.Expect.Output != "" {
		return fmt.Errorf("flow[%d].expect: output is only supported for view steps", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRecord:
		if a.Subject == "" {
			return fmt.Errorf("assertions[%d]: subject is required for record", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for record", index)
		}
		for column := range a.Expect {
			if column != record.ColumnTimestamp && column != record.ColumnSubject && !record.IsRuleColumn(column) {
				return fmt.Errorf("assertions[%d]: unknown column %q", index, column)
			}
		}
	case AssertNotFound:
		if a.Subject == "" {
			return fmt.Errorf("assertions[%d]: subject is required for not_found", index)
		}
	case AssertRecordCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for record_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
