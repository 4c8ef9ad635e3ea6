package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitResult is the JSON payload of the init command.
type InitResult struct {
	Store   string `json:"store"`
	Backend string `json:"backend"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty results table",
		Long: `Create an empty results table (header only) if none exists.
An existing table is left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.engine.Init(commandContext(cmd)); err != nil {
		return env.formatter.Fail(err)
	}

	if opts.Format == "json" {
		return env.formatter.SuccessJSON(InitResult{
			Store:   env.engine.Location(),
			Backend: env.cfg.Store.Backend,
		}, env.engine.Session())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Results table ready at %s\n", env.engine.Location())
	return nil
}
