package harness

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/roach88/casecheck/internal/jsontext"
	"github.com/roach88/casecheck/internal/procrun"
)

// Compare checks a finished process against the expected value.
//
// The checks run in order and the first one that fails decides the error:
//  1. a non-zero exit code yields *NonZeroExitError with stderr
//  2. stdout (trimmed) that is not one JSON value yields *InvalidOutputError
//  3. canonical text that differs from the expected text yields *MismatchError
//
// A nil return means the case passed.
func Compare(outcome *procrun.Outcome, expected jsontext.Value) error {
	if outcome == nil {
		return fmt.Errorf("no process outcome to compare")
	}

	if outcome.ExitCode != 0 {
		return &NonZeroExitError{Code: outcome.ExitCode, Stderr: string(outcome.Stderr)}
	}

	actual, err := jsontext.Parse(trimOutput(outcome.Stdout))
	if err != nil {
		return &InvalidOutputError{Stdout: string(outcome.Stdout), Err: err}
	}

	want, err := jsontext.Marshal(expected)
	if err != nil {
		return fmt.Errorf("failed to encode expected output: %w", err)
	}
	got, err := jsontext.Marshal(actual)
	if err != nil {
		return fmt.Errorf("failed to encode actual output: %w", err)
	}

	if !bytes.Equal(want, got) {
		return &MismatchError{Expected: string(want), Actual: string(got)}
	}
	return nil
}

// trimOutput strips the same characters as String.prototype.trim in
// JavaScript: ASCII whitespace, line and paragraph separators, the byte order
// mark, and every Unicode space separator (including U+00A0). U+0085 is kept.
func trimOutput(b []byte) []byte {
	return bytes.TrimFunc(b, func(r rune) bool {
		switch r {
		case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
			return true
		}
		return unicode.Is(unicode.Zs, r)
	})
}
