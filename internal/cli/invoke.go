package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
)

// CheckResult is the JSON payload of a rule command.
type CheckResult struct {
	Subject string `json:"subject"`
	Rule    string `json:"rule"`
	Outcome bool   `json:"outcome"`
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
	Store   string `json:"store"`
}

// ruleCommand describes one rule subcommand. answers is called after flag
// parsing and returns the raw answers for the rule.
type ruleCommand struct {
	rule    string
	short   string
	long    string
	answers func() rules.Answers
}

// newRuleCommand builds the shared shape of every rule command: the
// subject is the remaining arguments joined by spaces, so quoting a
// two-word name is optional.
func newRuleCommand(rootOpts *RootOptions, rc ruleCommand) *cobra.Command {
	return &cobra.Command{
		Use:           rc.rule + " <subject>",
		Short:         rc.short,
		Long:          rc.long,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, rc.rule, strings.Join(args, " "), rc.answers())
		},
	}
}

func runCheck(opts *RootOptions, cmd *cobra.Command, rule, subject string, answers rules.Answers) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ev, err := env.engine.Check(commandContext(cmd), rule, subject, answers)
	if err != nil {
		return env.formatter.Fail(err)
	}

	if opts.Format == "json" {
		return env.formatter.SuccessJSON(CheckResult{
			Subject: record.NormalizeSubject(subject),
			Rule:    ev.Rule.String(),
			Outcome: ev.Outcome,
			Summary: ev.Summary,
			Detail:  ev.Detail,
			Store:   env.engine.Location(),
		}, env.engine.Session())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Result: %s\n", ev.Summary)
	env.formatter.VerboseLog("%s: %s (saved to %s)", ev.Rule, ev.Detail, env.engine.Location())
	return nil
}

// flagAnswer renders a boolean flag as the T/F answer the rules read.
func flagAnswer(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// NewAttendanceCommand creates the attendance command.
func NewAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	var late, excuse bool

	cmd := newRuleCommand(rootOpts, ruleCommand{
		rule:  "attendance",
		short: "Check attendance eligibility",
		long: `Check attendance eligibility: a late student is eligible only with an
excuse letter; a student on time is always eligible.

Example:
  logicrules attendance "Ana Reyes" --late --excuse`,
		answers: func() rules.Answers {
			return rules.Answers{"late": flagAnswer(late), "excuse": flagAnswer(excuse)}
		},
	})

	cmd.Flags().BoolVar(&late, "late", false, "the student was late")
	cmd.Flags().BoolVar(&excuse, "excuse", false, "the student brought an excuse letter")

	return cmd
}

// NewGradingCommand creates the grading command.
func NewGradingCommand(rootOpts *RootOptions) *cobra.Command {
	var grade string

	cmd := newRuleCommand(rootOpts, ruleCommand{
		rule:  "grading",
		short: "Check a grade against the passing grade",
		long: `Check a grade against the configured passing grade (default 75).

An unparseable grade is reported and nothing is recorded.

Example:
  logicrules grading "Ana Reyes" --grade 80`,
		answers: func() rules.Answers {
			return rules.Answers{"grade": grade}
		},
	})

	cmd.Flags().StringVar(&grade, "grade", "", "student grade (required)")
	_ = cmd.MarkFlagRequired("grade")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var password string

	cmd := newRuleCommand(rootOpts, ruleCommand{
		rule:  "login",
		short: "Check a login attempt",
		long: `Check a password attempt against the configured password.

The attempt is compared verbatim; surrounding spaces count.

Example:
  logicrules login "Ana Reyes" --password admin123`,
		answers: func() rules.Answers {
			return rules.Answers{"password": password}
		},
	})

	cmd.Flags().StringVar(&password, "password", "", "password attempt (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewBonusCommand creates the bonus command.
func NewBonusCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		participated bool
		base         string
	)

	cmd := newRuleCommand(rootOpts, ruleCommand{
		rule:  "bonus",
		short: "Apply the participation bonus to a base grade",
		long: `Add the configured participation bonus (default 5) to a base grade
when the student participated.

Example:
  logicrules bonus "Ana Reyes" --participated --base 80`,
		answers: func() rules.Answers {
			return rules.Answers{"participated": flagAnswer(participated), "base": base}
		},
	})

	cmd.Flags().BoolVar(&participated, "participated", false, "the student participated")
	cmd.Flags().StringVar(&base, "base", "", "base grade (required)")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

// NewLibraryCommand creates the library command.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	var validID, overdue bool

	cmd := newRuleCommand(rootOpts, ruleCommand{
		rule:  "library",
		short: "Check library borrowing eligibility",
		long: `Check library borrowing: allowed with a valid ID and no overdue books.

Example:
  logicrules library "Ana Reyes" --valid-id`,
		answers: func() rules.Answers {
			return rules.Answers{"valid_id": flagAnswer(validID), "overdue": flagAnswer(overdue)}
		},
	})

	cmd.Flags().BoolVar(&validID, "valid-id", false, "the student has a valid ID")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "the student has overdue books")

	return cmd
}
