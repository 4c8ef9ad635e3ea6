// Package engine connects the rule evaluators to the record store.
//
// It is the boundary a shell (the CLI commands or the interactive menu)
// calls into:
//
//	Check(rule, subject, answers) -> evaluate the rule on raw answers
//	                              -> upsert the paired fields for subject
//	View(subject)                 -> rendered record or "not found" text
//
// Evaluation always happens before the store is touched. An answer that
// cannot be parsed (rules.InvalidInputError) aborts that one check with no
// read or write of storage. Corrupt or unreadable storage is returned to the
// caller as-is; the engine never guesses defaults.
//
// Every Engine carries a session ID (a UUIDv7 by default) that is attached
// to its log lines so that one run of the tool can be followed in the logs.
//
// The engine is synchronous and single-threaded. It adds no locking on top
// of the store.
package engine
