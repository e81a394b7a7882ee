package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/casecheck/internal/harness"
	"github.com/roach88/casecheck/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func passedReport(n int) *harness.Report {
	return &harness.Report{
		RunID:      "run-1",
		Total:      n,
		Passed:     n,
		StartedAt:  testutil.Epoch,
		FinishedAt: testutil.Epoch.Add(1500 * time.Millisecond),
	}
}

func failedReport(total, index int, err error) *harness.Report {
	r := passedReport(total)
	r.Passed = index - 1
	r.Aborted = true
	r.Failure = &harness.CaseFailure{Index: index, Err: err}
	return r
}

func renderText(t *testing.T, lang string, verbose bool, r *harness.Report) []byte {
	t.Helper()
	p, err := NewPrinter(lang)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteText(&stdout, &stderr, r, TextOptions{Printer: p, Verbose: verbose}))

	var out bytes.Buffer
	out.WriteString("stdout:\n")
	out.Write(stdout.Bytes())
	out.WriteString("stderr:\n")
	out.Write(stderr.Bytes())
	return out.Bytes()
}

func TestWriteText_Golden(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		verbose bool
		report  *harness.Report
	}{
		{
			name:   "en_pass",
			report: passedReport(3),
		},
		{
			name:    "en_mismatch_verbose",
			lang:    "en",
			verbose: true,
			report:  failedReport(3, 2, &harness.MismatchError{Expected: `{"x":1}`, Actual: `{"x":2}`}),
		},
		{
			name:   "en_nonzero_exit",
			lang:   "en-US",
			report: failedReport(1, 1, &harness.NonZeroExitError{Code: 1, Stderr: "boom"}),
		},
		{
			name:   "pt_pass",
			lang:   "pt-BR",
			report: passedReport(2),
		},
		{
			name:   "pt_mismatch",
			lang:   "pt-BR",
			report: failedReport(2, 1, &harness.MismatchError{Expected: `{"a":1,"b":2}`, Actual: `{"b":2,"a":1}`}),
		},
		{
			name:   "pt_invalid_output",
			lang:   "pt",
			report: failedReport(4, 3, &harness.InvalidOutputError{Stdout: "oops"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newGoldie(t).Assert(t, tt.name, renderText(t, tt.lang, tt.verbose, tt.report))
		})
	}
}

func TestWriteText_EmptyRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteText(&stdout, &stderr, passedReport(0), TextOptions{}))

	assert.Equal(t, "0 of 0 passed\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestWriteText_NoDiffWithoutVerbose(t *testing.T) {
	r := failedReport(1, 1, &harness.MismatchError{Expected: "1", Actual: "2"})

	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteText(&stdout, &stderr, r, TextOptions{}))

	assert.Empty(t, stdout.String())
	assert.Equal(t, "case #1 failed: expected=1, actual=2\n", stderr.String())
}

func TestWriteText_LargeCountsAreNotGrouped(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteText(&stdout, &bytes.Buffer{}, passedReport(12345), TextOptions{}))
	assert.Equal(t, "12345 of 12345 passed\n", stdout.String())
}

func TestNewPrinter(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"en-GB", language.English},
		{"pt-BR", language.BrazilianPortuguese},
		{"pt", language.BrazilianPortuguese},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			p, err := NewPrinter(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Language())
		})
	}
}

func TestNewPrinter_Rejects(t *testing.T) {
	_, err := NewPrinter("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")

	_, err = NewPrinter("not a tag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language")
}

func TestDiff(t *testing.T) {
	assert.Equal(t, `{"x":[-1-]{+2+}}`, Diff(`{"x":1}`, `{"x":2}`))
	assert.Equal(t, "same", Diff("same", "same"))
	assert.Equal(t, "{+x+}", Diff("", "x"))
	assert.Equal(t, "[-x-]", Diff("x", ""))
}

func TestSummarize_Golden(t *testing.T) {
	r := failedReport(3, 2, &harness.MismatchError{Expected: `{"x":1}`, Actual: `{"x":2}`})

	data, err := json.MarshalIndent(Summarize(r), "", "  ")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "summary_mismatch", data)
}

func TestSummarize(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		s := Summarize(passedReport(2))
		assert.True(t, s.OK)
		assert.Equal(t, 2, s.Executed)
		assert.Equal(t, int64(1500), s.DurationMS)
		assert.Nil(t, s.Failure)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		s := Summarize(failedReport(2, 1, &harness.NonZeroExitError{Code: 7, Stderr: "nope"}))
		require.NotNil(t, s.Failure)
		assert.Equal(t, harness.KindNonZeroExit, s.Failure.Kind)
		assert.Equal(t, harness.ErrCodeExit, s.Failure.Code)
		require.NotNil(t, s.Failure.ExitCode)
		assert.Equal(t, 7, *s.Failure.ExitCode)
		assert.Equal(t, "nope", s.Failure.Stderr)
	})

	t.Run("invalid output", func(t *testing.T) {
		s := Summarize(failedReport(2, 2, &harness.InvalidOutputError{Stdout: "junk"}))
		require.NotNil(t, s.Failure)
		assert.Equal(t, "junk", s.Failure.Stdout)
		assert.Nil(t, s.Failure.ExitCode)
	})
}

func TestPrinter_Detail(t *testing.T) {
	en, err := NewPrinter("en")
	require.NoError(t, err)
	pt, err := NewPrinter("pt-BR")
	require.NoError(t, err)

	exitErr := &harness.NonZeroExitError{Code: 2, Stderr: "trace"}
	assert.Equal(t, exitErr.Error(), en.Detail(exitErr))
	assert.Equal(t, "Processo saiu com código 2. STDERR: trace", pt.Detail(exitErr))

	other := errors.New("failed to start")
	assert.Equal(t, "failed to start", pt.Detail(other))
}
