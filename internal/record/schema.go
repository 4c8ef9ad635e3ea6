package record

import "slices"

// Column names that are not owned by any rule.
const (
	ColumnTimestamp = "timestamp"
	ColumnSubject   = "student"
)

// RuleID identifies one of the rules recorded per subject.
type RuleID int

const (
	Attendance RuleID = iota
	Grading
	Login
	Bonus
	Library

	ruleCount
)

// ruleColumns names a rule and its paired wire columns.
type ruleColumns struct {
	name    string
	outcome string
	detail  string
}

// ruleTable is the single place a new rule extends the schema.
var ruleTable = [ruleCount]ruleColumns{
	Attendance: {name: "attendance", outcome: "AttendanceRule", detail: "AttendanceDetail"},
	Grading:    {name: "grading", outcome: "GradingRule", detail: "GradingDetail"},
	Login:      {name: "login", outcome: "LoginSystemRule", detail: "LoginDetail"},
	Bonus:      {name: "bonus", outcome: "BonusPointsRule", detail: "BonusDetail"},
	Library:    {name: "library", outcome: "LibraryBorrowingRule", detail: "LibraryDetail"},
}

// columnRef locates a rule column.
type columnRef struct {
	rule   RuleID
	detail bool
}

var (
	columns     []string
	columnIndex map[string]columnRef
)

func init() {
	columns = []string{ColumnTimestamp, ColumnSubject}
	columnIndex = make(map[string]columnRef, 2*int(ruleCount))
	for id, rc := range ruleTable {
		columns = append(columns, rc.outcome, rc.detail)
		columnIndex[rc.outcome] = columnRef{rule: RuleID(id)}
		columnIndex[rc.detail] = columnRef{rule: RuleID(id), detail: true}
	}
}

// Columns returns the canonical ordered column list.
// The returned slice is a copy and may be modified by the caller.
func Columns() []string {
	return slices.Clone(columns)
}

// Rules returns every rule in schema order.
func Rules() []RuleID {
	ids := make([]RuleID, 0, ruleCount)
	for id := RuleID(0); id < ruleCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseRuleID resolves a rule by its short name (e.g. "grading").
func ParseRuleID(name string) (RuleID, bool) {
	for id, rc := range ruleTable {
		if rc.name == name {
			return RuleID(id), true
		}
	}
	return 0, false
}

// Valid reports whether r names a known rule.
func (r RuleID) Valid() bool {
	return r >= 0 && r < ruleCount
}

// String returns the rule's short name.
func (r RuleID) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return ruleTable[r].name
}

// OutcomeColumn returns the wire column holding the rule's outcome.
func (r RuleID) OutcomeColumn() string {
	return ruleTable[r].outcome
}

// DetailColumn returns the wire column holding the rule's detail text.
func (r RuleID) DetailColumn() string {
	return ruleTable[r].detail
}

// IsRuleColumn reports whether column belongs to a rule.
func IsRuleColumn(column string) bool {
	_, ok := columnIndex[column]
	return ok
}
