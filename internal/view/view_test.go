package view

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/testutil"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleRecord(t *testing.T) record.Record {
	t.Helper()
	rec := record.New("ana reyes", testutil.DefaultTime)
	require.NoError(t, rec.Apply(rules.Attendance(true, false).Fields()))
	require.NoError(t, rec.Apply(rules.Grading(80, 75).Fields()))
	require.NoError(t, rec.Apply(rules.Login("admin123", "admin123").Fields()))
	return rec
}

func TestRender_Golden(t *testing.T) {
	newGolden(t).Assert(t, "render_partial", []byte(Render(sampleRecord(t))))
}

func TestRender_AllRules_Golden(t *testing.T) {
	rec := sampleRecord(t)
	require.NoError(t, rec.Apply(rules.Bonus(false, 72.5, 5).Fields()))
	require.NoError(t, rec.Apply(rules.Library(true, true).Fields()))

	newGolden(t).Assert(t, "render_all", []byte(Render(rec)))
}

func TestRender_FiltersEmptyAndIdentity(t *testing.T) {
	rec := record.New("ben", testutil.DefaultTime)
	out := Render(rec)

	assert.Equal(t, "=== Record for Ben ===\n", out)
	assert.NotContains(t, out, "timestamp")
	assert.NotContains(t, out, "student:")
}

func TestRender_DoesNotMutate(t *testing.T) {
	rec := sampleRecord(t)
	before := rec
	_ = Render(rec)
	_ = NewDocument(rec)
	assert.Equal(t, before, rec)
}

func TestNotFound(t *testing.T) {
	assert.Equal(t, "No records found for Zoe.\n", NotFound("Zoe"))
}

func TestNewDocument_JSON_Golden(t *testing.T) {
	doc := NewDocument(sampleRecord(t))
	assert.Len(t, doc.Fields, 6)

	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	newGolden(t).Assert(t, "document", append(data, '\n'))
}

func TestNewDocument_EmptyFieldsIsArray(t *testing.T) {
	data, err := json.Marshal(NewDocument(record.New("ben", testutil.DefaultTime)))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fields":[]`)
}

func TestWriteTable_Golden(t *testing.T) {
	ana := sampleRecord(t)
	ben := record.New("ben", testutil.DefaultTime)
	require.NoError(t, ben.Apply(rules.Library(true, false).Fields()))

	rows := Summarize([]record.Record{ana, ben})
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Evaluated)
	assert.Equal(t, 1, rows[1].Evaluated)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rows))
	newGolden(t).Assert(t, "table", buf.Bytes())
}
