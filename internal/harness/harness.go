package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/logicrules/internal/engine"
	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/store"
	"github.com/roach88/logicrules/internal/testutil"
	"github.com/roach88/logicrules/internal/view"
)

// StepInterval is how far the harness clock moves before each setup and
// flow step, so every write gets its own timestamp.
const StepInterval = time.Minute

// Harness runs one scenario against a private store.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.FixedClock
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh temporary table for isolation. The clock
// starts at testutil.DefaultTime and the session ID is fixed, so two runs
// of the same scenario produce identical results.
//
// Execution flow:
// 1. Create a fresh table in a temporary directory
// 2. Apply setup rows
// 3. Execute flow steps, checking expect clauses
// 4. Load the final table and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "logicrules-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	backend := scenario.Backend
	if backend == "" {
		backend = store.BackendCSV
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	clock := testutil.NewDefaultClock()

	st, err := store.Open(backend, filepath.Join(dir, "logic_results."+backend),
		store.WithClock(clock),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", backend, err)
	}
	defer st.Close()

	eng := engine.New(st, rules.NewRegistry(scenario.policy()),
		engine.WithLogger(logger),
		engine.WithSessionGenerator(engine.NewFixedGenerator("scenario-"+scenario.Name)),
	)

	h := &Harness{
		store:  st,
		engine: eng,
		clock:  clock,
		logger: logger,
	}

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	result := NewResult()
	h.executeFlow(ctx, scenario.Flow, result)

	recs, err := st.LoadAll(ctx)
	if err != nil {
		result.AddError(fmt.Sprintf("failed to load final table: %v", err))
		return result, nil
	}
	for _, rec := range recs {
		result.Records = append(result.Records, view.NewDocument(rec))
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, recs) {
		result.AddError(msg)
	}

	return result, nil
}

// policy returns the default policy with the scenario's overrides applied.
func (s *Scenario) policy() rules.Policy {
	p := rules.DefaultPolicy()
	if s.Policy == nil {
		return p
	}
	if s.Policy.PassingGrade != nil {
		p.PassingGrade = *s.Policy.PassingGrade
	}
	if s.Policy.ParticipationBonus != nil {
		p.ParticipationBonus = *s.Policy.ParticipationBonus
	}
	if s.Policy.Password != nil {
		p.Password = *s.Policy.Password
	}
	return p
}

// executeSetup writes setup rows directly through the store.
func (h *Harness) executeSetup(ctx context.Context, setup []SetupStep) error {
	for i, step := range setup {
		h.clock.Advance(StepInterval)
		rec, inserted, err := h.store.Upsert(ctx, step.Subject, step.Fields)
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}
		h.logger.Info("setup step completed",
			"step", i,
			"subject", rec.Subject,
			"inserted", inserted,
		)
	}
	return nil
}

// executeFlow runs every flow step, recording it in the trace and
// comparing it with its expect clause. A failing step does not stop the
// flow.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) {
	for i, step := range flow {
		now := h.clock.Advance(StepInterval)

		var ev TraceEvent
		if step.Check != "" {
			ev = h.check(ctx, step, now)
		} else {
			ev = h.view(ctx, step, now)
		}
		ev = result.addEvent(ev)

		for _, msg := range compareStep(i, step, ev) {
			result.AddError(msg)
		}

		h.logger.Info("flow step completed",
			"step", i,
			"type", ev.Type,
			"subject", ev.Subject,
			"error", ev.Error,
		)
	}
}

func (h *Harness) check(ctx context.Context, step FlowStep, now time.Time) TraceEvent {
	ev := TraceEvent{
		Type:    "check",
		Rule:    step.Check,
		Subject: record.NormalizeSubject(step.Subject),
		Time:    now.Format(record.TimestampLayout),
	}

	got, err := h.engine.Check(ctx, step.Check, step.Subject, rules.Answers(step.Answers))
	if err != nil {
		ev.Error = ErrorKind(err)
		return ev
	}

	outcome := got.Outcome
	ev.Outcome = &outcome
	ev.Detail = got.Detail
	ev.Summary = got.Summary
	return ev
}

func (h *Harness) view(ctx context.Context, step FlowStep, now time.Time) TraceEvent {
	ev := TraceEvent{
		Type:    "view",
		Subject: record.NormalizeSubject(step.View),
		Time:    now.Format(record.TimestampLayout),
	}

	out, err := h.engine.View(ctx, step.View)
	if err != nil {
		ev.Error = ErrorKind(err)
		return ev
	}
	ev.Output = out
	return ev
}

// ErrorKind classifies an engine error for expect clauses and traces.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case rules.IsInvalidInput(err):
		return ErrInvalidInput
	case engine.IsUnknownRule(err):
		return ErrUnknownRule
	case engine.IsEmptySubject(err):
		return ErrEmptySubject
	case store.IsCorrupt(err):
		return ErrCorruptStore
	case store.IsIO(err):
		return ErrStoreIO
	default:
		return ErrOther
	}
}
