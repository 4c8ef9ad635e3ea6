package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/logicrules/internal/record"
)

// Backend kinds accepted by OpenBackend.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// DefaultSQLitePath is the database used when no path is configured for the
// sqlite backend. The CSV default is DefaultPath.
const DefaultSQLitePath = "logic_results.db"

// DefaultPathFor returns the default location for a backend kind. Unknown
// kinds get the CSV default; OpenBackend rejects them anyway.
func DefaultPathFor(kind string) string {
	if kind == BackendSQLite {
		return DefaultSQLitePath
	}
	return DefaultPath
}

// Backend loads and saves the whole table.
type Backend interface {
	// Load returns every persisted record in table order.
	// Storage that does not exist yet is an empty table, not an error.
	Load(ctx context.Context) ([]record.Record, error)

	// Save replaces the persisted table with recs. Either the full table
	// lands or the previous one is left intact.
	Save(ctx context.Context, recs []record.Record) error

	// Init creates an empty, header-only table if none exists.
	Init(ctx context.Context) error

	// Location identifies the storage for messages and errors.
	Location() string
}

// Clock supplies the time stamped on every write.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store is the record store. Upsert is its only mutation primitive.
type Store struct {
	backend Backend
	clock   Clock
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock (used by tests and the harness).
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New wraps a backend.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		clock:   systemClock{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenBackend returns the backend of the given kind at path.
// An empty kind selects the CSV backend.
func OpenBackend(kind, path string) (Backend, error) {
	switch kind {
	case "", BackendCSV:
		return NewCSVBackend(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown backend %q: must be %q or %q", kind, BackendCSV, BackendSQLite)
	}
}

// Open is OpenBackend followed by New.
func Open(kind, path string, opts ...Option) (*Store, error) {
	b, err := OpenBackend(kind, path)
	if err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

// Location returns the backend location.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Init creates a header-only table if none exists yet.
func (s *Store) Init(ctx context.Context) error {
	if err := s.backend.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	s.logger.Debug("store initialized", "location", s.backend.Location())
	return nil
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
