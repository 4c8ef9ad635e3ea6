package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/logicrules/internal/record"
)

const tableName = "records"

// SQLiteBackend keeps the flat table in a SQLite database.
// Every column is TEXT and holds the same wire value the CSV backend writes.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path.
// The records table itself is created lazily by Init or the first Save.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &IOError{Op: "connect", Path: path, Err: err}
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &IOError{Op: "configure", Path: path, Err: err}
	}

	return &SQLiteBackend{db: db, path: path}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Location returns the database path.
func (b *SQLiteBackend) Location() string {
	return b.path
}

// Init creates the records table if it does not exist.
func (b *SQLiteBackend) Init(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, createTableSQL()); err != nil {
		return &IOError{Op: "create table", Path: b.path, Err: err}
	}
	return nil
}

// Load returns every row in insertion order. A missing table is empty.
func (b *SQLiteBackend) Load(ctx context.Context) ([]record.Record, error) {
	exists, err := b.tableExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []record.Record{}, nil
	}

	if err := b.checkColumns(ctx); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY rowid ASC", columnList(), tableName))
	if err != nil {
		return nil, &IOError{Op: "query", Path: b.path, Err: err}
	}
	defer rows.Close()

	width := len(record.Columns())
	recs := []record.Record{}
	for n := 1; rows.Next(); n++ {
		cells := make([]sql.NullString, width)
		dest := make([]any, width)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &IOError{Op: "scan", Path: b.path, Err: err}
		}

		row := make([]string, width)
		for i, c := range cells {
			if !c.Valid {
				return nil, &CorruptStoreError{Path: b.path, Line: n, Err: &record.RowError{
					Column: record.Columns()[i],
					Reason: "NULL value",
				}}
			}
			row[i] = c.String
		}

		rec, err := record.FromRow(row)
		if err != nil {
			return nil, &CorruptStoreError{Path: b.path, Line: n, Err: err}
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "iterate", Path: b.path, Err: err}
	}
	return recs, nil
}

// Save replaces every row in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, recs []record.Record) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return &IOError{Op: "begin", Path: b.path, Err: err}
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, createTableSQL()); err != nil {
		return &IOError{Op: "create table", Path: b.path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+tableName); err != nil {
		return &IOError{Op: "delete", Path: b.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL())
	if err != nil {
		return &IOError{Op: "prepare", Path: b.path, Err: err}
	}
	defer stmt.Close()

	for i, rec := range recs {
		row := rec.Row()
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return &IOError{Op: fmt.Sprintf("insert row %d", i+1), Path: b.path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &IOError{Op: "commit", Path: b.path, Err: err}
	}
	return nil
}

func (b *SQLiteBackend) tableExists(ctx context.Context) (bool, error) {
	var name string
	err := b.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", tableName,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &IOError{Op: "lookup table", Path: b.path, Err: err}
	}
	return true, nil
}

// checkColumns compares the table's columns with the schema, in order.
func (b *SQLiteBackend) checkColumns(ctx context.Context) error {
	rows, err := b.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return &IOError{Op: "table info", Path: b.path, Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return &IOError{Op: "table info", Path: b.path, Err: err}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return &IOError{Op: "table info", Path: b.path, Err: err}
	}

	if err := record.ValidateHeader(names); err != nil {
		return &CorruptStoreError{Path: b.path, Err: err}
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnList() string {
	cols := record.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

func createTableSQL() string {
	cols := record.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT NOT NULL DEFAULT ''"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(defs, ", "))
}

func insertSQL() string {
	n := len(record.Columns())
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, columnList(), placeholders)
}
