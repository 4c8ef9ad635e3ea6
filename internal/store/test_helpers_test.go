package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/testutil"
)

// createTestStore creates a CSV-backed store in a temp directory.
func createTestStore(t *testing.T) (*Store, *testutil.FixedClock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logic_results.csv")
	clock := testutil.NewDefaultClock()
	s := New(NewCSVBackend(path), WithClock(clock), WithLogger(discardLogger()))
	return s, clock, path
}

// createSQLiteStore creates a SQLite-backed store in a temp directory.
func createSQLiteStore(t *testing.T) (*Store, *testutil.FixedClock) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logic_results.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	clock := testutil.NewDefaultClock()
	return New(b, WithClock(clock), WithLogger(discardLogger())), clock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	return string(b)
}

func gradingFields(outcome, detail string) record.Fields {
	return record.Fields{"GradingRule": outcome, "GradingDetail": detail}
}

func attendanceFields(outcome, detail string) record.Fields {
	return record.Fields{"AttendanceRule": outcome, "AttendanceDetail": detail}
}

// headerLine is the CSV header as written to disk.
const headerLine = "timestamp,student,AttendanceRule,AttendanceDetail,GradingRule,GradingDetail," +
	"LoginSystemRule,LoginDetail,BonusPointsRule,BonusDetail,LibraryBorrowingRule,LibraryDetail\r\n"

var ctx = context.Background()
