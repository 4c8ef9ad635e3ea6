// Package rules implements the five rule evaluators.
//
// Each evaluator is a pure function of its inputs: it never reads or writes
// the store. It returns an Evaluation whose Fields method yields the paired
// outcome/detail update for one subject's record.
//
//	Attendance  late, excuse           outcome = !late || excuse
//	Grading     grade                  outcome = grade >= passing grade
//	Login       attempted password     outcome = attempt == expected
//	Bonus       participated, base     outcome = participated; final = base + bonus
//	Library     valid ID, overdue      outcome = validID && !overdue
//
// Rules also accept raw answers (as typed at a prompt) through the Rule
// interface. Non-numeric numbers fail with *InvalidInputError before any
// evaluation happens.
package rules
