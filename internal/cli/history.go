package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/casecheck/internal/store"
)

// HistoryOptions holds flags for the history commands.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// RunDetail is the JSON payload of "history show".
type RunDetail struct {
	Run   store.Run          `json:"run"`
	Cases []store.CaseResult `json:"cases"`
}

const historyTimeFormat = "2006-01-02 15:04:05Z07:00"

// NewHistoryCommand creates the history command and its show subcommand.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with --db",
		Long: `List runs recorded in a history database, newest first.

Example:
  casecheck history --db history.db
  casecheck history --db history.db --limit 5 --format json
  casecheck history show --db history.db <run-id>`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")

	cmd.AddCommand(newHistoryShowCommand(opts))

	return cmd
}

func newHistoryShowCommand(opts *HistoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the case results of one run",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("history show takes exactly one run ID, got %d", len(args)))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(opts, args[0], cmd)
		},
	}
}

// openHistory opens an existing history database. Unlike run, the history
// commands never create one.
func openHistory(path string) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "--db is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "history database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open history", err)
	}
	return st, nil
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
		return reportedExit(ExitFailure, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	renderRunTable(formatter.Writer, runs)
	return nil
}

func runHistoryShow(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	run, cases, err := st.GetRun(cmd.Context(), runID)
	if err != nil {
		code := ErrCodeHistory
		if errors.Is(err, store.ErrRunNotFound) {
			code = "E_NOT_FOUND"
		}
		_ = formatter.Error(code, err.Error(), nil)
		return reportedExit(ExitFailure, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: *run, Cases: cases})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Command:  %s\n", run.Command)
	fmt.Fprintf(w, "Workdir:  %s\n", run.Workdir)
	fmt.Fprintf(w, "Cases:    %s\n", run.CasesPath)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(historyTimeFormat))
	fmt.Fprintf(w, "Status:   %s (%d of %d passed)\n", run.Status, run.Passed, run.Total)
	if run.FailedIndex > 0 {
		fmt.Fprintf(w, "Failure:  case #%d %s: %s\n", run.FailedIndex, run.FailureKind, run.FailureDetail)
	}
	fmt.Fprintln(w)
	renderCaseTable(w, cases)
	return nil
}

func renderRunTable(w io.Writer, runs []store.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Run ID", "Started", "Status", "Passed", "Failed Case", "Kind", "Duration"})

	for _, r := range runs {
		failed, duration := "", ""
		if r.FailedIndex > 0 {
			failed = "#" + strconv.Itoa(r.FailedIndex)
		}
		if !r.FinishedAt.IsZero() {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Format(historyTimeFormat),
			r.Status,
			fmt.Sprintf("%d/%d", r.Passed, r.Total),
			failed,
			r.FailureKind,
			duration,
		})
	}
	t.Render()
}

func renderCaseTable(w io.Writer, cases []store.CaseResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Case", "Status", "Exit", "Duration", "Detail"})

	for _, c := range cases {
		exit := "-"
		if c.ExitCode != nil {
			exit = strconv.Itoa(*c.ExitCode)
		}
		t.AppendRow(table.Row{
			"#" + strconv.Itoa(c.Index),
			c.Status,
			exit,
			(time.Duration(c.DurationMS) * time.Millisecond).String(),
			c.Detail,
		})
	}
	t.Render()
}
