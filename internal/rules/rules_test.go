package rules

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/logicrules/internal/record"
)

func TestAttendance(t *testing.T) {
	tests := []struct {
		late, excuse bool
		want         bool
		detail       string
	}{
		{late: false, excuse: false, want: true, detail: "attendance=82.5 -> eligible"},
		{late: false, excuse: true, want: true, detail: "attendance=82.5 -> eligible"},
		{late: true, excuse: true, want: true, detail: "attendance=70.0 -> eligible"},
		{late: true, excuse: false, want: false, detail: "attendance=70.0 -> not eligible"},
	}
	for _, tt := range tests {
		ev := Attendance(tt.late, tt.excuse)
		assert.Equal(t, record.Attendance, ev.Rule)
		assert.Equal(t, tt.want, ev.Outcome, "late=%v excuse=%v", tt.late, tt.excuse)
		assert.Equal(t, tt.detail, ev.Detail)
	}
}

func TestGrading(t *testing.T) {
	tests := []struct {
		grade  float64
		want   bool
		detail string
	}{
		{80, true, "grade=80.0 -> pass"},
		{75, true, "grade=75.0 -> pass"},
		{74.99, false, "grade=74.99 -> fail"},
		{0, false, "grade=0.0 -> fail"},
		{-3.5, false, "grade=-3.5 -> fail"},
	}
	for _, tt := range tests {
		ev := Grading(tt.grade, DefaultPolicy().PassingGrade)
		assert.Equal(t, tt.want, ev.Outcome, "grade=%v", tt.grade)
		assert.Equal(t, tt.detail, ev.Detail)
	}
}

func TestLogin(t *testing.T) {
	ok := Login("admin123", "admin123")
	assert.True(t, ok.Outcome)
	assert.Equal(t, "user_ok=True, pass_ok=True, locked=False -> login success", ok.Detail)
	assert.Equal(t, "Login Success", ok.Summary)

	denied := Login("wrong", "admin123")
	assert.False(t, denied.Outcome)
	assert.Equal(t, "user_ok=False, pass_ok=False, locked=True -> login denied", denied.Detail)

	// Equality is exact.
	assert.False(t, Login("admin123 ", "admin123").Outcome)
	assert.False(t, Login("ADMIN123", "admin123").Outcome)
}

func TestBonus(t *testing.T) {
	in := Bonus(true, 80, 5)
	assert.True(t, in.Outcome)
	assert.Equal(t, "participated=True, base=80.0 -> bonus 5.0, final=85.0", in.Detail)
	assert.Equal(t, "Final grade = 85.0", in.Summary)

	out := Bonus(false, 72.5, 5)
	assert.False(t, out.Outcome)
	assert.Equal(t, "participated=False, base=72.5 -> bonus 0.0, final=72.5", out.Detail)
}

func TestLibrary(t *testing.T) {
	tests := []struct {
		validID, overdue bool
		want             bool
		detail           string
	}{
		{true, false, true, "id_valid=True, overdue=False -> can borrow"},
		{true, true, false, "id_valid=True, overdue=True -> cannot borrow"},
		{false, false, false, "id_valid=False, overdue=False -> cannot borrow"},
		{false, true, false, "id_valid=False, overdue=True -> cannot borrow"},
	}
	for _, tt := range tests {
		ev := Library(tt.validID, tt.overdue)
		assert.Equal(t, tt.want, ev.Outcome)
		assert.Equal(t, tt.detail, ev.Detail)
	}
}

func TestEvaluationFields_ArePaired(t *testing.T) {
	for _, ev := range []Evaluation{
		Attendance(true, false),
		Grading(80, 75),
		Login("x", "y"),
		Bonus(true, 1, 5),
		Library(true, true),
	} {
		f := ev.Fields()
		require.NoError(t, f.Validate())
		assert.Len(t, f, 2)
		assert.Equal(t, record.OutcomeOf(ev.Outcome).String(), f[ev.Rule.OutcomeColumn()])
		assert.Equal(t, ev.Detail, f[ev.Rule.DetailColumn()])
	}
}

func TestParseFlag(t *testing.T) {
	for _, raw := range []string{"T", "t", " T ", "t\n"} {
		assert.True(t, ParseFlag(raw), "raw=%q", raw)
	}
	for _, raw := range []string{"F", "", "yes", "true", "TT"} {
		assert.False(t, ParseFlag(raw), "raw=%q", raw)
	}
}

func TestParseGrade(t *testing.T) {
	v, err := ParseGrade(" 80 ")
	require.NoError(t, err)
	assert.Equal(t, 80.0, v)

	for _, raw := range []string{"abc", "", "80%", "NaN", "inf"} {
		_, err := ParseGrade(raw)
		require.Error(t, err, "raw=%q", raw)
		assert.True(t, IsInvalidInput(err))

		var ie *InvalidInputError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, "grade", ie.Field)
		assert.Equal(t, raw, ie.Value)
	}

	_, err = ParseGrade("abc")
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "80.0", formatNumber(80))
	assert.Equal(t, "82.5", formatNumber(82.5))
	assert.Equal(t, "0.1", formatNumber(0.1))
	assert.Equal(t, "-2.0", formatNumber(-2))
	assert.Equal(t, "0.0", formatNumber(0))
}

func TestFormatNumber_ExponentForm(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1e20, "1e+20"},
		{1e16, "1e+16"},
		{1e15, "1000000000000000.0"},
		{-1.5e20, "-1.5e+20"},
		{1e-05, "1e-05"},
		{1.5e-07, "1.5e-07"},
		{0.0001, "0.0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.v), "v=%g", tt.v)
	}
	assert.Equal(t, "grade=1e+20 -> pass", Grading(1e20, 75).Detail)
}
