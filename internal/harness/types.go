package harness

import (
	"time"

	"github.com/roach88/casecheck/internal/jsontext"
	"github.com/roach88/casecheck/internal/procrun"
)

// TestCase is one input/expected-output pair.
type TestCase struct {
	Input  jsontext.Value
	Output jsontext.Value
}

// CaseResult is the outcome of a single executed case.
type CaseResult struct {
	// Index is the 1-based position of the case in the fixture document.
	Index int

	// Outcome is nil when the process could not be started.
	Outcome *procrun.Outcome

	// Err is nil when the case passed.
	Err error

	Duration time.Duration
}

// Passed reports whether the case passed.
func (r CaseResult) Passed() bool {
	return r.Err == nil
}

// CaseFailure identifies the case that stopped a run.
type CaseFailure struct {
	Index int
	Err   error
}

// Report is the aggregate outcome of a run.
type Report struct {
	RunID string

	// Total is the number of cases loaded, not the number executed.
	Total int

	// Passed counts cases that passed before the run stopped.
	Passed int

	// Aborted is set when a failing case stopped the run.
	Aborted bool

	// Failure is nil when every case passed.
	Failure *CaseFailure

	StartedAt  time.Time
	FinishedAt time.Time
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failure == nil
}

// Executed is the number of processes spawned (or attempted) during the run.
func (r *Report) Executed() int {
	if r.Failure != nil {
		return r.Failure.Index
	}
	return r.Passed
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
