package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/casecheck/internal/harness"
	"github.com/roach88/casecheck/internal/procrun"
	"github.com/roach88/casecheck/internal/report"
	"github.com/roach88/casecheck/internal/store"
)

// InputOptions locates the runner config and the case list.
type InputOptions struct {
	ConfigPath string
	CasesPath  string

	// Overrides for the config file values, applied only when the flag is set.
	Command string
	Workdir string
	Timeout time.Duration
}

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	InputOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every case against the program under test",
		Long: `Run every case against the program under test, stopping at the first failure.

The program is described by a runner config (runner.yml by default):

  command: python3 main.py   # split on whitespace, no shell
  workdir: solution          # optional, relative to the current directory
  timeout: 5s                # optional, per case

Example:
  casecheck run
  casecheck run --config runner.yml --cases tests/cases.json
  casecheck run --command "node main.js" --db history.db --lang pt-BR`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(opts, cmd)
		},
	}

	bindRunFlags(cmd, opts)

	return cmd
}

func bindRunFlags(cmd *cobra.Command, opts *RunOptions) {
	bindInputFlags(cmd, &opts.InputOptions)
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")
}

func bindInputFlags(cmd *cobra.Command, opts *InputOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", harness.DefaultConfigPath, "runner config (.yml, .yaml, .json, or .cue)")
	cmd.Flags().StringVar(&opts.CasesPath, "cases", harness.DefaultCasesPath, "case list (.json, .yml, or .yaml)")
	cmd.Flags().StringVar(&opts.Command, "command", "", "override the config command")
	cmd.Flags().StringVar(&opts.Workdir, "workdir", "", "override the config workdir")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "override the config per-case timeout (0 disables)")
}

func runHarness(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	printer, err := report.NewPrinter(opts.Lang)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --lang", err)
	}

	cfg, cases, err := loadInputs(cmd, &opts.InputOptions)
	if err != nil {
		_ = formatter.Error(harness.Code(err), err.Error(), nil)
		return reportedExit(ExitFailure, err.Error())
	}
	formatter.VerboseLog("loaded %d case(s) from %s", len(cases), opts.CasesPath)

	runner, err := procrun.New(cfg.Command, cfg.Workdir)
	if err != nil {
		_ = formatter.Error(harness.ErrCodeConfig, err.Error(), nil)
		return reportedExit(ExitFailure, err.Error())
	}
	runner.Timeout = cfg.Timeout
	runner.Logger = logger

	hopts := []harness.Option{harness.WithLogger(logger)}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeHistory, fmt.Sprintf("failed to open history %s: %v", opts.Database, err), nil)
			return reportedExit(ExitFailure, "failed to open history")
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		hopts = append(hopts, harness.WithObserver(store.NewRecorder(st, store.RunMeta{
			Command:   cfg.Command,
			Workdir:   cfg.Workdir,
			CasesPath: opts.CasesPath,
		})))
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	// SIGINT/SIGTERM kill the running case and end the run.
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := harness.New(runner, hopts...).Run(ctx, cases)

	if err := writeRunReport(formatter, printer, rep); err != nil {
		return err
	}
	if !rep.OK() {
		return reportedExit(ExitFailure, fmt.Sprintf("case #%d failed", rep.Failure.Index))
	}
	return nil
}

func writeRunReport(formatter *OutputFormatter, printer *report.Printer, rep *harness.Report) error {
	if formatter.Format != "json" {
		return report.WriteText(formatter.Writer, formatter.GetErrWriter(), rep, report.TextOptions{
			Printer: printer,
			Verbose: formatter.Verbose,
		})
	}

	resp := CLIResponse{
		Status: "ok",
		Data:   report.Summarize(rep),
		RunID:  rep.RunID,
	}
	if !rep.OK() {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    harness.Code(rep.Failure.Err),
			Message: fmt.Sprintf("case #%d: %v", rep.Failure.Index, rep.Failure.Err),
		}
	}
	return formatter.encode(resp)
}

// loadInputs reads the runner config, applies flag overrides, and loads the
// case list. Errors are *harness.LoadError.
//
// A missing default config is not an error when --command is given, so a
// one-off run needs no config file.
func loadInputs(cmd *cobra.Command, opts *InputOptions) (*harness.RunnerConfig, []harness.TestCase, error) {
	flags := cmd.Flags()
	source := opts.ConfigPath

	var doc *harness.ConfigDocument
	if _, statErr := os.Stat(source); statErr != nil && !flags.Changed("config") && flags.Changed("command") {
		doc = &harness.ConfigDocument{}
		source = "(flags)"
	} else {
		var err error
		if doc, err = harness.ReadConfigDocument(source); err != nil {
			return nil, nil, err
		}
	}

	if flags.Changed("command") {
		doc.Command = opts.Command
	}
	if flags.Changed("workdir") {
		doc.Workdir = opts.Workdir
	}
	if flags.Changed("timeout") {
		doc.Timeout = opts.Timeout.String()
	}

	cfg, err := doc.Resolve()
	if err != nil {
		return nil, nil, &harness.LoadError{Code: harness.ErrCodeConfig, Path: source, Err: err}
	}
	cfg.Source = source

	cases, err := harness.LoadCases(opts.CasesPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cases, nil
}

// newLogger returns the CLI logger: warnings only, debug with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
