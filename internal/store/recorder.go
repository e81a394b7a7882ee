package store

import (
	"context"

	"github.com/roach88/casecheck/internal/harness"
)

// RunMeta describes where a run's inputs came from.
type RunMeta struct {
	Command   string
	Workdir   string
	CasesPath string
}

// Recorder writes a harness run into the store as it happens.
// It implements harness.Observer and is good for one run.
type Recorder struct {
	store *Store
	meta  RunMeta
	runID string
}

var _ harness.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder for one run.
func NewRecorder(s *Store, meta RunMeta) *Recorder {
	return &Recorder{store: s, meta: meta}
}

// RunID is the ID of the recorded run, empty before RunStarted.
func (r *Recorder) RunID() string {
	return r.runID
}

// Writes ignore cancellation of ctx so an interrupted run is still recorded.

func (r *Recorder) RunStarted(ctx context.Context, report *harness.Report) error {
	r.runID = report.RunID
	return r.store.BeginRun(context.WithoutCancel(ctx), Run{
		ID:        report.RunID,
		StartedAt: report.StartedAt,
		Command:   r.meta.Command,
		Workdir:   r.meta.Workdir,
		CasesPath: r.meta.CasesPath,
		Total:     report.Total,
	})
}

func (r *Recorder) CaseFinished(ctx context.Context, result harness.CaseResult) error {
	cr := CaseResult{
		RunID:      r.runID,
		Index:      result.Index,
		Status:     StatusPassed,
		DurationMS: result.Duration.Milliseconds(),
	}
	if result.Outcome != nil {
		code := result.Outcome.ExitCode
		cr.ExitCode = &code
	}
	if !result.Passed() {
		cr.Status = StatusFailed
		cr.Detail = result.Err.Error()
	}
	return r.store.WriteCaseResult(context.WithoutCancel(ctx), cr)
}

func (r *Recorder) RunFinished(ctx context.Context, report *harness.Report) error {
	run := Run{
		ID:         report.RunID,
		FinishedAt: report.FinishedAt,
		Passed:     report.Passed,
		Status:     StatusPassed,
	}
	if report.Failure != nil {
		run.Status = StatusFailed
		run.FailedIndex = report.Failure.Index
		run.FailureKind = harness.Kind(report.Failure.Err)
		run.FailureDetail = report.Failure.Err.Error()
	}
	return r.store.FinishRun(context.WithoutCancel(ctx), run)
}
