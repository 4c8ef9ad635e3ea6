package store

import (
	"context"
	"fmt"

	"github.com/roach88/logicrules/internal/record"
)

// LoadAll returns every record in table order.
// Returns an empty slice (not nil) when nothing has been stored yet.
func (s *Store) LoadAll(ctx context.Context) ([]record.Record, error) {
	recs, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if recs == nil {
		recs = []record.Record{}
	}
	return recs, nil
}

// Find returns the first record whose subject matches key after normalization.
func (s *Store) Find(ctx context.Context, key string) (record.Record, bool, error) {
	recs, err := s.LoadAll(ctx)
	if err != nil {
		return record.Record{}, false, err
	}

	i := indexOf(recs, record.NormalizeSubject(key))
	if i < 0 {
		return record.Record{}, false, nil
	}
	return recs[i], true, nil
}

// indexOf scans in table order and stops at the first match, so a table with
// externally introduced duplicates always resolves to its earliest row.
func indexOf(recs []record.Record, subject string) int {
	for i, rec := range recs {
		if record.NormalizeSubject(rec.Subject) == subject {
			return i
		}
	}
	return -1
}
