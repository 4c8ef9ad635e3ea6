package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/roach88/logicrules/internal/record"
)

// DefaultPath is the table location used when none is configured.
const DefaultPath = "logic_results.csv"

// CSVBackend keeps the table in a comma-separated file with a header row.
type CSVBackend struct {
	path string

	// rename is os.Rename outside of tests.
	rename func(oldpath, newpath string) error
}

// NewCSVBackend returns a backend for the file at path. The file is not
// touched until the first Load, Save or Init.
func NewCSVBackend(path string) *CSVBackend {
	if path == "" {
		path = DefaultPath
	}
	return &CSVBackend{path: path, rename: os.Rename}
}

// Location returns the file path.
func (b *CSVBackend) Location() string {
	return b.path
}

// Load reads every row. A missing file is an empty table.
func (b *CSVBackend) Load(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "open", Path: b.path, Err: err}
	}
	defer f.Close()

	return decodeCSV(f, b.path)
}

// Save replaces the file with recs. The previous file survives any failure.
func (b *CSVBackend) Save(ctx context.Context, recs []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(b.path, b.rename, func(w io.Writer) error {
		return encodeCSV(w, recs)
	})
}

// Init writes a header-only table if the file does not exist yet.
func (b *CSVBackend) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := os.Stat(b.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "stat", Path: b.path, Err: err}
	}
	return writeFileAtomic(b.path, b.rename, func(w io.Writer) error {
		return encodeCSV(w, nil)
	})
}

func decodeCSV(r io.Reader, path string) ([]record.Record, error) {
	cr := csv.NewReader(r)
	// Column counts are checked against the schema below.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &CorruptStoreError{Path: path, Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return nil, readError(path, err)
	}
	if err := record.ValidateHeader(header); err != nil {
		return nil, &CorruptStoreError{Path: path, Line: 1, Err: err}
	}

	recs := []record.Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(path, err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := record.FromRow(row)
		if err != nil {
			return nil, &CorruptStoreError{Path: path, Line: line, Err: err}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// readError separates CSV syntax problems from failures of the reader itself.
func readError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &CorruptStoreError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &IOError{Op: "read", Path: path, Err: err}
}

func encodeCSV(w io.Writer, recs []record.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(record.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range recs {
		if err := cw.Write(rec.Row()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
