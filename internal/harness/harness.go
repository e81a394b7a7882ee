package harness

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/casecheck/internal/jsontext"
	"github.com/roach88/casecheck/internal/procrun"
)

// CaseRunner runs the program under test for one input.
// *procrun.Runner is the production implementation.
type CaseRunner interface {
	Run(ctx context.Context, input jsontext.Value) (*procrun.Outcome, error)
}

// Observer receives run events in order. Errors returned by an observer are
// logged and never change the outcome of the run.
type Observer interface {
	RunStarted(ctx context.Context, report *Report) error
	CaseFinished(ctx context.Context, result CaseResult) error
	RunFinished(ctx context.Context, report *Report) error
}

// Harness drives a case list through a CaseRunner, one case at a time,
// and stops at the first failure.
type Harness struct {
	runner    CaseRunner
	observers []Observer
	ids       RunIDGenerator
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithObserver registers an observer. Observers are notified in
// registration order.
func WithObserver(o Observer) Option {
	return func(h *Harness) {
		h.observers = append(h.observers, o)
	}
}

// WithRunIDGenerator overrides the UUIDv7 run ID generator (for testing).
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(h *Harness) {
		h.ids = g
	}
}

// WithClock overrides time.Now (for testing).
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		h.now = now
	}
}

// New creates a Harness around runner.
func New(runner CaseRunner, opts ...Option) *Harness {
	h := &Harness{
		runner: runner,
		ids:    UUIDv7Generator{},
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes cases strictly in order.
//
// Each case spawns exactly one process and is never retried. A passing case
// increments Report.Passed. The first failing case is recorded in
// Report.Failure with its 1-based index and no later case is started.
// Cancelling ctx kills the running child and fails that case.
func (h *Harness) Run(ctx context.Context, cases []TestCase) *Report {
	report := &Report{
		RunID:     h.ids.Generate(),
		Total:     len(cases),
		StartedAt: h.now(),
	}
	h.logger.Info("run started", "run_id", report.RunID, "cases", report.Total)
	h.notify("run started", func(o Observer) error { return o.RunStarted(ctx, report) })

	for i, tc := range cases {
		result := h.runCase(ctx, i+1, tc)
		h.notify("case finished", func(o Observer) error { return o.CaseFinished(ctx, result) })

		if !result.Passed() {
			report.Failure = &CaseFailure{Index: result.Index, Err: result.Err}
			report.Aborted = true
			h.logger.Info("case failed",
				"case", result.Index,
				"kind", Kind(result.Err),
				"error", result.Err,
			)
			break
		}

		report.Passed++
		h.logger.Debug("case passed", "case", result.Index, "duration", result.Duration)
	}

	report.FinishedAt = h.now()
	h.logger.Info("run finished",
		"run_id", report.RunID,
		"passed", report.Passed,
		"total", report.Total,
		"ok", report.OK(),
	)
	h.notify("run finished", func(o Observer) error { return o.RunFinished(ctx, report) })

	return report
}

func (h *Harness) runCase(ctx context.Context, index int, tc TestCase) CaseResult {
	start := h.now()
	result := CaseResult{Index: index}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	outcome, err := h.runner.Run(ctx, tc.Input)
	result.Outcome = outcome
	if err == nil {
		err = Compare(outcome, tc.Output)
	}
	var timeoutErr *procrun.TimeoutError
	if errors.As(err, &timeoutErr) {
		result.Outcome = timeoutErr.Outcome
	}
	result.Err = err
	result.Duration = h.now().Sub(start)
	if result.Outcome != nil {
		result.Duration = result.Outcome.Duration
	}
	return result
}

func (h *Harness) notify(event string, fn func(Observer) error) {
	for _, o := range h.observers {
		if err := fn(o); err != nil {
			h.logger.Warn("observer failed", "event", event, "error", err)
		}
	}
}
