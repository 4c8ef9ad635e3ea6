package record

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func TestColumns_Order(t *testing.T) {
	want := []string{
		"timestamp", "student",
		"AttendanceRule", "AttendanceDetail",
		"GradingRule", "GradingDetail",
		"LoginSystemRule", "LoginDetail",
		"BonusPointsRule", "BonusDetail",
		"LibraryBorrowingRule", "LibraryDetail",
	}
	assert.Equal(t, want, Columns())

	// Callers get a copy.
	cols := Columns()
	cols[0] = "mutated"
	assert.Equal(t, "timestamp", Columns()[0])
}

func TestParseRuleID(t *testing.T) {
	for _, id := range Rules() {
		got, ok := ParseRuleID(id.String())
		require.True(t, ok, id.String())
		assert.Equal(t, id, got)
	}

	_, ok := ParseRuleID("parking")
	assert.False(t, ok)
	assert.Equal(t, "unknown", RuleID(42).String())
}

func TestOutcome_Literals(t *testing.T) {
	tests := []struct {
		literal string
		want    Outcome
	}{
		{"", Unset},
		{"True", True},
		{"False", False},
	}
	for _, tt := range tests {
		got, err := ParseOutcome(tt.literal)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.literal, got.String())
	}

	for _, bad := range []string{"T", "true", "FALSE", "1", " True"} {
		_, err := ParseOutcome(bad)
		assert.Error(t, err, bad)
	}
}

func TestOutcome_Bool(t *testing.T) {
	v, ok := OutcomeOf(true).Bool()
	assert.True(t, v)
	assert.True(t, ok)

	v, ok = OutcomeOf(false).Bool()
	assert.False(t, v)
	assert.True(t, ok)

	_, ok = Unset.Bool()
	assert.False(t, ok)
	assert.False(t, Unset.IsSet())
}

func TestNormalizeSubject(t *testing.T) {
	for _, raw := range []string{"john smith", "JOHN SMITH", " John Smith ", "\tjOhN sMiTh\n"} {
		assert.Equal(t, "John Smith", NormalizeSubject(raw), "raw=%q", raw)
	}
	assert.True(t, SameSubject("ana", " ANA"))
	assert.False(t, SameSubject("ana", "anna"))
}

func TestNormalizeSubject_ApostropheStartsWord(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"o'brien", "O'Brien"},
		{"D’ANGELO", "D’Angelo"},
		{"mary o'neil", "Mary O'Neil"},
		{"o'", "O'"},
		{"'ana'", "'Ana'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSubject(tt.raw), "raw=%q", tt.raw)
	}
	assert.True(t, SameSubject("O'BRIEN", "o'brien"))
}

func TestNormalizeSubject_ComposesUnicode(t *testing.T) {
	decomposed := "jose\u0301"
	assert.Equal(t, "José", NormalizeSubject(decomposed))
}

func TestNew_AllRuleFieldsEmpty(t *testing.T) {
	rec := New("  maria clara ", testNow.Add(400*time.Millisecond))

	assert.Equal(t, "Maria Clara", rec.Subject)
	assert.Equal(t, testNow, rec.Timestamp)
	assert.Empty(t, rec.Populated())

	row := rec.Row()
	require.Len(t, row, len(Columns()))
	for i, v := range row[2:] {
		assert.Empty(t, v, "column %s", Columns()[i+2])
	}
}

func TestApply_MergesOnlyNamedFields(t *testing.T) {
	rec := New("ana", testNow)
	require.NoError(t, rec.Apply(Fields{
		"AttendanceRule":   "False",
		"AttendanceDetail": "attendance=70.0 -> not eligible",
	}))
	require.NoError(t, rec.Apply(Fields{
		"GradingRule":   "True",
		"GradingDetail": "grade=80.0 -> pass",
	}))

	assert.Equal(t, Result{Outcome: False, Detail: "attendance=70.0 -> not eligible"}, rec.Result(Attendance))
	assert.Equal(t, Result{Outcome: True, Detail: "grade=80.0 -> pass"}, rec.Result(Grading))
	assert.Equal(t, Result{}, rec.Result(Login))
}

func TestFieldsValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty update",
			fields: Fields{},
			check:  func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:   "reserved timestamp",
			fields: Fields{"timestamp": "2020-01-01 00:00:00"},
			check: func(t *testing.T, err error) {
				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, "timestamp", fe.Column)
			},
		},
		{
			name:   "unknown column",
			fields: Fields{"ParkingRule": "True"},
			check: func(t *testing.T, err error) {
				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, "ParkingRule", fe.Column)
			},
		},
		{
			name:   "bad outcome literal",
			fields: Fields{"GradingRule": "yes", "GradingDetail": "x"},
			check: func(t *testing.T, err error) {
				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, "GradingRule", fe.Column)
			},
		},
		{
			name:   "outcome without detail",
			fields: Fields{"LoginSystemRule": "True"},
			check: func(t *testing.T, err error) {
				var ue *UnpairedFieldError
				require.True(t, errors.As(err, &ue))
				assert.Equal(t, Login, ue.Rule)
				assert.Equal(t, "LoginDetail", ue.Missing)
			},
		},
		{
			name:   "detail without outcome",
			fields: Fields{"LibraryDetail": "cannot borrow"},
			check: func(t *testing.T, err error) {
				var ue *UnpairedFieldError
				require.True(t, errors.As(err, &ue))
				assert.Equal(t, "LibraryBorrowingRule", ue.Missing)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.fields.Validate())
		})
	}
}

func TestApply_InvalidLeavesRecordUntouched(t *testing.T) {
	rec := New("ana", testNow)
	before := rec

	err := rec.Apply(Fields{"GradingRule": "True"})
	require.Error(t, err)
	assert.Equal(t, before, rec)
}

func TestRowRoundTrip(t *testing.T) {
	rec := New("ana", testNow)
	require.NoError(t, rec.Apply(Fields{
		"BonusPointsRule": "True",
		"BonusDetail":     "participated=True, base=80.0 -> bonus 5.0, final=85.0",
	}))

	row := rec.Row()
	assert.Equal(t, "2025-03-14 09:26:53", row[0])
	assert.Equal(t, "Ana", row[1])

	got, err := FromRow(row)
	require.NoError(t, err)
	assert.True(t, rec.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, rec.Subject, got.Subject)
	assert.Equal(t, rec.Results, got.Results)
	assert.Equal(t, row, got.Row())
}

func TestFromRow_Malformed(t *testing.T) {
	good := New("ana", testNow).Row()

	short := good[:5]
	_, err := FromRow(short)
	assert.Error(t, err)

	badTime := append([]string(nil), good...)
	badTime[0] = "yesterday"
	_, err = FromRow(badTime)
	var re *RowError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "timestamp", re.Column)

	noSubject := append([]string(nil), good...)
	noSubject[1] = ""
	_, err = FromRow(noSubject)
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "student", re.Column)

	badOutcome := append([]string(nil), good...)
	badOutcome[2] = "T"
	_, err = FromRow(badOutcome)
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "AttendanceRule", re.Column)
}

func TestValidateHeader(t *testing.T) {
	assert.NoError(t, ValidateHeader(Columns()))

	swapped := Columns()
	swapped[2], swapped[3] = swapped[3], swapped[2]
	assert.Error(t, ValidateHeader(swapped))

	assert.Error(t, ValidateHeader(Columns()[:4]))
	assert.Error(t, ValidateHeader(append(Columns(), "extra")))
}

func TestGet(t *testing.T) {
	rec := New("ana", testNow)
	v, ok := rec.Get("student")
	assert.True(t, ok)
	assert.Equal(t, "Ana", v)

	v, ok = rec.Get("GradingRule")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = rec.Get("nope")
	assert.False(t, ok)
}
