package store

import (
	"errors"
	"time"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one row of the runs table.
type Run struct {
	ID string `json:"id"`

	StartedAt time.Time `json:"started_at"`

	// FinishedAt is zero while the run is in progress.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	Command   string `json:"command"`
	Workdir   string `json:"workdir"`
	CasesPath string `json:"cases_path"`
	Total     int    `json:"total"`
	Passed    int    `json:"passed"`
	Status    string `json:"status"`

	// FailedIndex is the 1-based index of the failing case, 0 when none failed.
	FailedIndex   int    `json:"failed_index,omitempty"`
	FailureKind   string `json:"failure_kind,omitempty"`
	FailureDetail string `json:"failure_detail,omitempty"`
}

// CaseResult is one row of the case_results table.
type CaseResult struct {
	RunID  string `json:"-"`
	Index  int    `json:"index"`
	Status string `json:"status"`

	// ExitCode is nil when the process never started.
	ExitCode *int `json:"exit_code,omitempty"`

	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"`
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
