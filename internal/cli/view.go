package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/view"
)

// ViewResult is the JSON payload of the view command.
type ViewResult struct {
	Subject string         `json:"subject"`
	Found   bool           `json:"found"`
	Record  *view.Document `json:"record,omitempty"`
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <subject>",
		Short: "Show the stored record for a student",
		Long: `Show every evaluated rule for a student. Rules never evaluated are
left out. A student with no record is reported and is not an error.

Example:
  logicrules view ana reyes`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(rootOpts, cmd, strings.Join(args, " "))
		},
	}
}

func runView(opts *RootOptions, cmd *cobra.Command, subject string) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := commandContext(cmd)

	if opts.Format != "json" {
		text, err := env.engine.View(ctx, subject)
		if err != nil {
			return env.formatter.Fail(err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	rec, found, err := env.engine.Lookup(ctx, subject)
	if err != nil {
		return env.formatter.Fail(err)
	}
	result := ViewResult{Subject: record.NormalizeSubject(subject), Found: found}
	if found {
		doc := view.NewDocument(rec)
		result.Record = &doc
	}
	return env.formatter.SuccessJSON(result, env.engine.Session())
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored student",
		Long: `List every student in table order with the time of the last update and
how many rules have been evaluated.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	recs, err := env.engine.Records(commandContext(cmd))
	if err != nil {
		return env.formatter.Fail(err)
	}
	rows := view.Summarize(recs)

	if opts.Format == "json" {
		return env.formatter.SuccessJSON(rows, env.engine.Session())
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}
	return view.WriteTable(w, rows)
}
