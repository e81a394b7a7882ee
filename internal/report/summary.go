package report

import (
	"errors"

	"github.com/roach88/casecheck/internal/harness"
)

// Summary is the machine-readable outcome of a run.
type Summary struct {
	RunID      string          `json:"run_id"`
	OK         bool            `json:"ok"`
	Total      int             `json:"total"`
	Passed     int             `json:"passed"`
	Executed   int             `json:"executed"`
	DurationMS int64           `json:"duration_ms"`
	Failure    *FailureSummary `json:"failure,omitempty"`
}

// FailureSummary describes the case that stopped the run. Only the fields
// relevant to Kind are set.
type FailureSummary struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	ExitCode *int   `json:"exit_code,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	Stdout   string `json:"stdout,omitempty"`
}

// Summarize converts a report into its machine-readable form.
func Summarize(r *harness.Report) Summary {
	s := Summary{
		RunID:      r.RunID,
		OK:         r.OK(),
		Total:      r.Total,
		Passed:     r.Passed,
		Executed:   r.Executed(),
		DurationMS: r.Duration().Milliseconds(),
	}
	if r.Failure == nil {
		return s
	}

	err := r.Failure.Err
	f := &FailureSummary{
		Index:   r.Failure.Index,
		Kind:    harness.Kind(err),
		Code:    harness.Code(err),
		Message: err.Error(),
	}

	var (
		mismatch *harness.MismatchError
		exitErr  *harness.NonZeroExitError
		invalid  *harness.InvalidOutputError
	)
	switch {
	case errors.As(err, &mismatch):
		f.Expected = mismatch.Expected
		f.Actual = mismatch.Actual
	case errors.As(err, &exitErr):
		code := exitErr.Code
		f.ExitCode = &code
		f.Stderr = exitErr.Stderr
	case errors.As(err, &invalid):
		f.Stdout = invalid.Stdout
	}
	s.Failure = f
	return s
}
