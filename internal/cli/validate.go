package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/logicrules/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Config  string `json:"config"`
	Backend string `json:"backend"`
	Store   string `json:"store"`
	Records int    `json:"records"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the results table",
		Long: `Validate the configuration against its schema and read the whole
results table, reporting a malformed header or row without changing
anything. A missing table is valid and holds no records.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	source := configSource(opts.ConfigPath)
	env.formatter.VerboseLog("Config: %s", source)
	env.formatter.VerboseLog("Reading %s table at %s", env.cfg.Store.Backend, env.engine.Location())

	recs, err := env.engine.Records(commandContext(cmd))
	if err != nil {
		return env.formatter.Fail(err)
	}

	result := ValidationResult{
		Valid:   true,
		Config:  source,
		Backend: env.cfg.Store.Backend,
		Store:   env.engine.Location(),
		Records: len(recs),
	}

	if opts.Format == "json" {
		return env.formatter.SuccessJSON(result, env.engine.Session())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Config valid, %d record(s) in %s\n", result.Records, result.Store)
	return nil
}

// configSource names the file config.Load read for path.
func configSource(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.DefaultFile
	}
	return "(defaults)"
}
