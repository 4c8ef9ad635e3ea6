// Package harness runs end-to-end scenarios against the rule engine.
//
// A scenario seeds a fresh results table, runs a flow of rule checks and
// lookups through the engine, and asserts on the final table.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	backend: csv            # or sqlite
//	policy:
//	  passing_grade: 60     # optional overrides
//	setup:
//	  - subject: ana reyes
//	    fields: { GradingRule: "True", GradingDetail: "grade=80.0 -> pass" }
//	flow:
//	  - check: attendance
//	    subject: ana reyes
//	    answers: { late: T, excuse: F }
//	    expect:
//	      outcome: false
//	      detail: "attendance=70.0 -> not eligible"
//	  - check: grading
//	    subject: ana reyes
//	    answers: { grade: abc }
//	    expect: { error: invalid_input }
//	  - view: ana reyes
//	assertions:
//	  - type: record
//	    subject: Ana Reyes
//	    expect: { AttendanceRule: "False", LoginSystemRule: "" }
//	  - type: not_found
//	    subject: ben
//	  - type: record_count
//	    count: 1
//
// # Assertion Types
//
//   - record: the subject's row has the given column values (subset match)
//   - not_found: no row exists for the subject
//   - record_count: the table has exactly N rows
//
// # Deterministic Testing
//
// The clock starts at testutil.DefaultTime and advances StepInterval
// before every step, and the engine session ID is derived from the
// scenario name. Identical scenarios therefore produce identical
// snapshots for golden file comparison.
package harness
