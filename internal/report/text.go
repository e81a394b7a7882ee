package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/casecheck/internal/harness"
)

// TextOptions controls WriteText.
type TextOptions struct {
	Printer *Printer

	// Verbose adds a diff line after a mismatch diagnostic.
	Verbose bool
}

// WriteText writes the console report for r. The success summary goes to
// stdout; the failure diagnostic goes to stderr.
func WriteText(stdout, stderr io.Writer, r *harness.Report, opts TextOptions) error {
	p := opts.Printer
	if p == nil {
		var err error
		if p, err = NewPrinter(""); err != nil {
			return err
		}
	}

	if r.OK() {
		_, err := fmt.Fprintln(stdout, p.AllPassed(r.Passed, r.Total))
		return err
	}

	index := r.Failure.Index
	var mismatch *harness.MismatchError
	if !errors.As(r.Failure.Err, &mismatch) {
		_, err := fmt.Fprintln(stderr, p.CaseError(index, p.Detail(r.Failure.Err)))
		return err
	}

	if _, err := fmt.Fprintln(stderr, p.CaseFailed(index, mismatch.Expected, mismatch.Actual)); err != nil {
		return err
	}
	if opts.Verbose {
		_, err := fmt.Fprintln(stderr, p.CaseDiff(index, Diff(mismatch.Expected, mismatch.Actual)))
		return err
	}
	return nil
}
