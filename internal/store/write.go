package store

import (
	"context"
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// SaveAll writes the full table.
//
// An empty slice is a no-op: the store is never truncated to nothing by
// accident. Use Init to create an empty table.
func (s *Store) SaveAll(ctx context.Context, recs []record.Record) error {
	if len(recs) == 0 {
		s.logger.Debug("save skipped: no records", "location", s.backend.Location())
		return nil
	}
	if err := s.backend.Save(ctx, recs); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

// Upsert merges fields into the record for key, creating the record if the
// key is new. Columns not named in fields keep their value; the timestamp is
// refreshed either way.
//
// The update is validated before storage is touched. Returns the record as
// written and whether it was inserted.
func (s *Store) Upsert(ctx context.Context, key string, fields record.Fields) (record.Record, bool, error) {
	if err := fields.Validate(); err != nil {
		return record.Record{}, false, fmt.Errorf("upsert: %w", err)
	}

	subject := record.NormalizeSubject(key)
	if subject == "" {
		return record.Record{}, false, fmt.Errorf("upsert: empty subject key")
	}

	recs, err := s.LoadAll(ctx)
	if err != nil {
		return record.Record{}, false, fmt.Errorf("upsert: %w", err)
	}

	now := s.clock.Now()
	inserted := false

	i := indexOf(recs, subject)
	if i < 0 {
		recs = append(recs, record.New(subject, now))
		i = len(recs) - 1
		inserted = true
	} else {
		recs[i].Touch(now)
	}

	// Validated above, cannot fail.
	if err := recs[i].Apply(fields); err != nil {
		return record.Record{}, false, fmt.Errorf("upsert: %w", err)
	}

	if err := s.SaveAll(ctx, recs); err != nil {
		return record.Record{}, false, fmt.Errorf("upsert: %w", err)
	}

	s.logger.Debug("record upserted",
		"subject", subject,
		"inserted", inserted,
		"fields", len(fields),
		"records", len(recs),
	)
	return recs[i], inserted, nil
}
