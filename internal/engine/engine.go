package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/store"
	"github.com/roach88/logicrules/internal/view"
)

// Engine evaluates rules and records their results.
type Engine struct {
	store    *store.Store
	registry *rules.Registry
	logger   *slog.Logger
	session  string
}

// Option allows configuration of engine parameters.
type Option func(*engineOptions)

type engineOptions struct {
	logger  *slog.Logger
	sessGen SessionGenerator
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithSessionGenerator overrides the session ID source.
// Default: UUIDv7Generator.
func WithSessionGenerator(g SessionGenerator) Option {
	return func(o *engineOptions) { o.sessGen = g }
}

// New creates an Engine over st using the rules in reg.
func New(st *store.Store, reg *rules.Registry, opts ...Option) *Engine {
	o := engineOptions{
		logger:  slog.Default(),
		sessGen: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	session := o.sessGen.Generate()
	return &Engine{
		store:    st,
		registry: reg,
		logger:   o.logger.With("session", session),
		session:  session,
	}
}

// Session returns this engine's session ID.
func (e *Engine) Session() string {
	return e.session
}

// Rules returns the available rules in menu order.
func (e *Engine) Rules() []rules.Rule {
	return e.registry.All()
}

// Check evaluates the named rule on raw answers and records the result for
// subject. Nothing is read or written if the rule is unknown, the subject is
// blank, or an answer is invalid.
func (e *Engine) Check(ctx context.Context, ruleName, subject string, answers rules.Answers) (rules.Evaluation, error) {
	if record.NormalizeSubject(subject) == "" {
		return rules.Evaluation{}, newEmptySubjectError()
	}

	rule, ok := e.registry.Lookup(ruleName)
	if !ok {
		return rules.Evaluation{}, newUnknownRuleError(ruleName)
	}

	ev, err := rule.Evaluate(answers)
	if err != nil {
		e.logger.Warn("evaluation aborted", "rule", ruleName, "error", err)
		return rules.Evaluation{}, fmt.Errorf("%s: %w", rule.Title(), err)
	}

	if err := e.Record(ctx, subject, ev); err != nil {
		return rules.Evaluation{}, err
	}
	return ev, nil
}

// Record stores an evaluation computed by the caller.
func (e *Engine) Record(ctx context.Context, subject string, ev rules.Evaluation) error {
	if record.NormalizeSubject(subject) == "" {
		return newEmptySubjectError()
	}

	rec, inserted, err := e.store.Upsert(ctx, subject, ev.Fields())
	if err != nil {
		e.logger.Error("record failed", "rule", ev.Rule.String(), "subject", subject, "error", err)
		return err
	}

	e.logger.Info("rule evaluated",
		"rule", ev.Rule.String(),
		"subject", rec.Subject,
		"outcome", ev.Outcome,
		"new_subject", inserted,
	)
	return nil
}

// Lookup returns the record for subject, if any.
func (e *Engine) Lookup(ctx context.Context, subject string) (record.Record, bool, error) {
	return e.store.Find(ctx, subject)
}

// View renders the record for subject, or the not-found message.
func (e *Engine) View(ctx context.Context, subject string) (string, error) {
	rec, ok, err := e.store.Find(ctx, subject)
	if err != nil {
		return "", err
	}
	if !ok {
		return view.NotFound(record.NormalizeSubject(subject)), nil
	}
	return view.Render(rec), nil
}

// Records returns every stored record in table order.
func (e *Engine) Records(ctx context.Context) ([]record.Record, error) {
	return e.store.LoadAll(ctx)
}

// Init creates an empty table if none exists.
func (e *Engine) Init(ctx context.Context) error {
	return e.store.Init(ctx)
}

// Location returns where records are stored.
func (e *Engine) Location() string {
	return e.store.Location()
}
