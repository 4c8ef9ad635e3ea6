package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestRun_MinimalScenario(t *testing.T) {
	scenario, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 1)

	ev := result.Trace[0]
	assert.Equal(t, 1, ev.Seq)
	assert.Equal(t, "check", ev.Type)
	assert.Equal(t, "grading", ev.Rule)
	assert.Equal(t, "Ana Reyes", ev.Subject)
	require.NotNil(t, ev.Outcome)
	assert.True(t, *ev.Outcome)
	assert.Equal(t, "grade=80.0 -> pass", ev.Detail)
	assert.Equal(t, "2025-01-06 08:31:00", ev.Time)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Ana Reyes", result.Records[0].Subject)
	assert.Equal(t, "2025-01-06 08:31:00", result.Records[0].Timestamp)
}

func TestRun_Testdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_WithSetup(t *testing.T) {
	scenario := &Scenario{
		Name:        "setup",
		Description: "Setup rows are merged by later checks",
		Setup: []SetupStep{{
			Subject: "ana reyes",
			Fields:  map[string]string{"GradingRule": "True", "GradingDetail": "grade=90.0 -> pass"},
		}},
		Flow: []FlowStep{{
			Check:   "library",
			Subject: "ANA REYES",
			Answers: map[string]string{"valid_id": "T", "overdue": "F"},
			Expect:  &ExpectClause{Outcome: boolPtr(true), Summary: "Allowed to Borrow"},
		}},
		Assertions: []Assertion{
			{Type: AssertRecord, Subject: "Ana Reyes", Expect: map[string]string{
				"GradingRule":          "True",
				"LibraryBorrowingRule": "True",
				"LibraryDetail":        "id_valid=True, overdue=False -> can borrow",
			}},
			{Type: AssertRecordCount, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	// Setup at 08:31, the check at 08:32.
	require.Len(t, result.Records, 1)
	assert.Equal(t, "2025-01-06 08:32:00", result.Records[0].Timestamp)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Wrong expectations are reported",
		Flow: []FlowStep{
			{
				Check:   "grading",
				Subject: "ana",
				Answers: map[string]string{"grade": "50"},
				Expect:  &ExpectClause{Outcome: boolPtr(true), Detail: "grade=50.0 -> pass"},
			},
			{
				Check:   "grading",
				Subject: "ana",
				Answers: map[string]string{"grade": "fifty"},
			},
			{
				Check:   "grading",
				Subject: "ana",
				Answers: map[string]string{"grade": "60"},
				Expect:  &ExpectClause{Error: ErrInvalidInput},
			},
		},
		Assertions: []Assertion{{Type: AssertRecordCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "flow[0]: outcome: expected true, got false")
	assert.Contains(t, result.Errors[1], "flow[0]: detail")
	assert.Contains(t, result.Errors[2], "flow[1]: unexpected invalid_input error")
	assert.Contains(t, result.Errors[3], "flow[2]: expected invalid_input error, step succeeded")
}

func TestRun_AssertionFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "assertion",
		Description: "Failed assertions are reported with the trace",
		Flow: []FlowStep{{
			Check:   "attendance",
			Subject: "ben",
			Answers: map[string]string{"late": "F", "excuse": "F"},
		}},
		Assertions: []Assertion{
			{Type: AssertRecord, Subject: "Ben", Expect: map[string]string{"AttendanceRule": "False"}},
			{Type: AssertNotFound, Subject: "ben"},
			{Type: AssertRecordCount, Count: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], `AttendanceRule="True" (want "False")`)
	assert.Contains(t, result.Errors[0], `check attendance "Ben"`)
	assert.Contains(t, result.Errors[1], "Assertion failed: not_found")
	assert.Contains(t, result.Errors[2], "Expected: 2 record(s)")
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "attendance_then_grading.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalSnapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := MarshalSnapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_FreshTablePerRun(t *testing.T) {
	scenario := &Scenario{
		Name:        "fresh",
		Description: "Each run starts empty",
		Flow: []FlowStep{{
			Check:   "login",
			Subject: "ana",
			Answers: map[string]string{"password": "admin123"},
		}},
		Assertions: []Assertion{{Type: AssertRecordCount, Count: 1}},
	}

	for range 2 {
		result, err := Run(scenario)
		require.NoError(t, err)
		assert.True(t, result.Pass, "errors: %v", result.Errors)
	}
}

func TestRun_SetupErrorAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_setup",
		Description: "Invalid setup rows stop the run",
		Setup:       []SetupStep{{Subject: "ana", Fields: map[string]string{"Mood": "good"}}},
		Flow:        []FlowStep{{View: "ana"}},
		Assertions:  []Assertion{{Type: AssertRecordCount, Count: 0}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 0")
}

func TestResult_AddError(t *testing.T) {
	result := NewResult()
	assert.True(t, result.Pass)

	result.AddError("boom")
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"boom"}, result.Errors)
}

func TestResult_AddEventNumbersSequentially(t *testing.T) {
	result := NewResult()
	result.addEvent(TraceEvent{Type: "check"})
	ev := result.addEvent(TraceEvent{Type: "view"})

	assert.Equal(t, 2, ev.Seq)
	assert.Equal(t, 1, result.Trace[0].Seq)
}
