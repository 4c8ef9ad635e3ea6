// Package record defines the per-subject record that logicrules persists.
//
// Every record carries the same fixed column set:
//
//	timestamp, student,
//	AttendanceRule, AttendanceDetail,
//	GradingRule, GradingDetail,
//	LoginSystemRule, LoginDetail,
//	BonusPointsRule, BonusDetail,
//	LibraryBorrowingRule, LibraryDetail
//
// Rule outcomes are tri-state (unset, true, false) in memory and are only
// turned into the "", "True", "False" wire literals at the storage boundary.
//
// A rule's outcome and detail columns always change together. Fields.Validate
// rejects partial updates that name one without the other.
package record
