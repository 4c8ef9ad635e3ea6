package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/logicrules/internal/config"
	"github.com/roach88/logicrules/internal/engine"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/store"
)

// runEnv is everything a command needs once flags are parsed.
type runEnv struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *store.Store
	engine    *engine.Engine
	formatter *OutputFormatter
}

// newFormatter builds the formatter for cmd. Diagnostics go to stderr so
// they never corrupt JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openEnv loads configuration, applies flag overrides, and opens the
// store and engine. Failures are reported through the formatter.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*runEnv, error) {
	formatter := newFormatter(opts, cmd)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, formatter.Fail(err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.Verbose)

	storeOpts := []store.Option{store.WithLogger(logger)}
	if opts.Clock != nil {
		storeOpts = append(storeOpts, store.WithClock(opts.Clock))
	}
	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path, storeOpts...)
	if err != nil {
		return nil, formatter.Fail(err)
	}

	engOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.SessionGenerator != nil {
		engOpts = append(engOpts, engine.WithSessionGenerator(opts.SessionGenerator))
	}
	eng := engine.New(st, rules.NewRegistry(cfg.RulesPolicy()), engOpts...)

	logger.Debug("store ready",
		"backend", cfg.Store.Backend,
		"location", st.Location(),
		"session", eng.Session(),
	)

	return &runEnv{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		engine:    eng,
		formatter: formatter,
	}, nil
}

func (e *runEnv) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "error", err)
	}
}

// resolveConfig reads the config file and lays the flag overrides on top.
// --backend without an explicit path selects that backend's default file.
// The merged result is validated again so a bad --backend is caught by
// the same schema as a bad config file.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	overridden := false
	if opts.Backend != "" {
		cfg.UseBackend(opts.Backend)
		overridden = true
	}
	if opts.StorePath != "" {
		cfg.UsePath(opts.StorePath)
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the text logger used by every command. --verbose wins
// over the configured level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
