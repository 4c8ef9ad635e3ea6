package record

import (
	"fmt"
	"time"
)

// ValidateHeader checks a persisted header row against the schema.
// Names and order must match exactly.
func ValidateHeader(header []string) error {
	if len(header) != len(columns) {
		return &RowError{Reason: fmt.Sprintf("header has %d columns, want %d", len(header), len(columns))}
	}
	for i, name := range header {
		if name != columns[i] {
			return &RowError{Column: name, Reason: fmt.Sprintf("header position %d: want %q", i, columns[i])}
		}
	}
	return nil
}

// Row encodes the record in schema column order.
func (r Record) Row() []string {
	row := make([]string, 0, len(columns))
	for _, column := range columns {
		v, _ := r.Get(column)
		row = append(row, v)
	}
	return row
}

// FromRow decodes a row in schema column order.
// Timestamps are read in the local time zone, matching how they are written.
func FromRow(row []string) (Record, error) {
	if len(row) != len(columns) {
		return Record{}, &RowError{Reason: fmt.Sprintf("row has %d columns, want %d", len(row), len(columns))}
	}

	ts, err := time.ParseInLocation(TimestampLayout, row[0], time.Local)
	if err != nil {
		return Record{}, &RowError{Column: ColumnTimestamp, Reason: fmt.Sprintf("invalid timestamp %q", row[0])}
	}
	if row[1] == "" {
		return Record{}, &RowError{Column: ColumnSubject, Reason: "empty subject"}
	}

	rec := Record{Timestamp: ts, Subject: row[1]}
	for i := 2; i < len(columns); i++ {
		ref := columnIndex[columns[i]]
		if ref.detail {
			rec.Results[ref.rule].Detail = row[i]
			continue
		}
		o, err := ParseOutcome(row[i])
		if err != nil {
			return Record{}, &RowError{Column: columns[i], Reason: err.Error()}
		}
		rec.Results[ref.rule].Outcome = o
	}
	return rec, nil
}
