package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/casecheck/internal/procrun"
)

// Failure kinds, used in reports and run history.
const (
	KindConfigLoad    = "ConfigLoadError"
	KindCaseLoad      = "CaseLoadError"
	KindSpawn         = "SpawnError"
	KindTimeout       = "Timeout"
	KindNonZeroExit   = "NonZeroExit"
	KindInvalidOutput = "InvalidOutput"
	KindMismatch      = "Mismatch"
	KindInterrupted   = "Interrupted"
	KindUnknown       = "Error"
)

// Error codes for machine-readable output.
const (
	ErrCodeConfig      = "E_CONFIG"
	ErrCodeCases       = "E_CASES"
	ErrCodeSpawn       = "E_SPAWN"
	ErrCodeTimeout     = "E_TIMEOUT"
	ErrCodeExit        = "E_EXIT"
	ErrCodeOutput      = "E_OUTPUT"
	ErrCodeMismatch    = "E_MISMATCH"
	ErrCodeInterrupted = "E_INTERRUPTED"
	ErrCodeGeneric     = "E_GENERIC"
)

// LoadError reports that the runner config or the case list could not be
// loaded. Code is ErrCodeConfig or ErrCodeCases.
type LoadError struct {
	Code string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	what := "cases"
	if e.Code == ErrCodeConfig {
		what = "runner config"
	}
	return fmt.Sprintf("failed to load %s %s: %v", what, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NonZeroExitError reports a program that exited with a non-zero status.
type NonZeroExitError struct {
	Code   int
	Stderr string
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("process exited with code %d. stderr: %s", e.Code, e.Stderr)
}

// InvalidOutputError reports stdout that is not a single JSON value.
type InvalidOutputError struct {
	Stdout string
	Err    error
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("output is not valid JSON: %s", e.Stdout)
}

func (e *InvalidOutputError) Unwrap() error {
	return e.Err
}

// MismatchError reports output whose canonical text differs from the
// expected value's canonical text.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected=%s, actual=%s", e.Expected, e.Actual)
}

// Kind maps err to its failure kind.
func Kind(err error) string {
	var (
		loadErr     *LoadError
		spawnErr    *procrun.SpawnError
		timeoutErr  *procrun.TimeoutError
		exitErr     *NonZeroExitError
		invalidErr  *InvalidOutputError
		mismatchErr *MismatchError
	)
	switch {
	case errors.As(err, &loadErr):
		if loadErr.Code == ErrCodeConfig {
			return KindConfigLoad
		}
		return KindCaseLoad
	case errors.As(err, &spawnErr):
		return KindSpawn
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &exitErr):
		return KindNonZeroExit
	case errors.As(err, &invalidErr):
		return KindInvalidOutput
	case errors.As(err, &mismatchErr):
		return KindMismatch
	case errors.Is(err, context.Canceled):
		return KindInterrupted
	default:
		return KindUnknown
	}
}

// Code maps err to its machine-readable error code.
func Code(err error) string {
	switch Kind(err) {
	case KindConfigLoad:
		return ErrCodeConfig
	case KindCaseLoad:
		return ErrCodeCases
	case KindSpawn:
		return ErrCodeSpawn
	case KindTimeout:
		return ErrCodeTimeout
	case KindNonZeroExit:
		return ErrCodeExit
	case KindInvalidOutput:
		return ErrCodeOutput
	case KindMismatch:
		return ErrCodeMismatch
	case KindInterrupted:
		return ErrCodeInterrupted
	default:
		return ErrCodeGeneric
	}
}
