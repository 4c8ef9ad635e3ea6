// Package view renders stored records for display.
//
// Rendering is read-only: timestamp, subject and empty rule columns are
// filtered out of the detail listing, but the stored record is not changed.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/logicrules/internal/record"
)

// Render returns the text view of one record.
//
//	=== Record for Ana Reyes ===
//	GradingRule: True
//	GradingDetail: grade=80.0 -> pass
func Render(rec record.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Record for %s ===\n", rec.Subject)
	for _, f := range rec.Populated() {
		fmt.Fprintf(&b, "%s: %s\n", f.Column, f.Value)
	}
	return b.String()
}

// NotFound is the text shown when no record matches a subject.
func NotFound(subject string) string {
	return fmt.Sprintf("No records found for %s.\n", subject)
}

// Entry is one populated column.
type Entry struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Document is the structured form of a record used for JSON output.
type Document struct {
	Subject   string  `json:"subject"`
	Timestamp string  `json:"timestamp"`
	Fields    []Entry `json:"fields"`
}

// NewDocument converts a record. Only populated rule columns are included.
func NewDocument(rec record.Record) Document {
	doc := Document{
		Subject:   rec.Subject,
		Timestamp: rec.Timestamp.Format(record.TimestampLayout),
		Fields:    []Entry{},
	}
	for _, f := range rec.Populated() {
		doc.Fields = append(doc.Fields, Entry{Column: f.Column, Value: f.Value})
	}
	return doc
}

// Summary is one line of the record listing.
type Summary struct {
	Subject   string `json:"subject"`
	Timestamp string `json:"timestamp"`
	Evaluated int    `json:"evaluated"`
}

// Summarize lists records in table order.
func Summarize(recs []record.Record) []Summary {
	out := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		n := 0
		for _, id := range record.Rules() {
			if rec.Result(id).Outcome.IsSet() {
				n++
			}
		}
		out = append(out, Summary{
			Subject:   rec.Subject,
			Timestamp: rec.Timestamp.Format(record.TimestampLayout),
			Evaluated: n,
		})
	}
	return out
}

// WriteTable writes summaries as an aligned table.
func WriteTable(w io.Writer, rows []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tLAST UPDATED\tRULES EVALUATED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", r.Subject, r.Timestamp, r.Evaluated, len(record.Rules()))
	}
	return tw.Flush()
}
