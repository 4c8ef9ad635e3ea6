// Package store provides durable storage for per-subject rule records.
//
// The persisted form is always one flat table: a header row followed by one
// row per subject, in the fixed column order defined by package record.
// There is no incremental append path. Every mutation is a full
// read-modify-write of the table:
//
//	load all rows -> merge the update into the first matching row
//	              -> (or append a new row built by record.New)
//	              -> write the whole table back
//
// # Backends
//
//   - CSVBackend: the default. Writes go to a temp file in the target
//     directory, are fsynced, then renamed over the table, so a failed save
//     leaves the previous table in place.
//   - SQLiteBackend: the same flat table stored in a "records" table.
//     Saves replace every row inside one transaction.
//
// A missing table loads as empty. A table that exists but does not match the
// schema fails with *CorruptStoreError and is never repaired automatically.
//
// # Concurrency
//
// Store is built for one process at a time. Two processes upserting into the
// same location race, and the last full-table write wins.
package store
