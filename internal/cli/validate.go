package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/casecheck/internal/harness"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool   `json:"valid"`
	Config    string `json:"config"`
	Command   string `json:"command"`
	Workdir   string `json:"workdir"`
	Timeout   string `json:"timeout,omitempty"`
	CasesPath string `json:"cases_path"`
	Cases     int    `json:"cases"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InputOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the runner config and case list without running anything",
		Long: `Load and validate the runner config and the case list.

Applies the same parsing and schema checks as run, including flag
overrides, but spawns no process. Faster than run for fixture authoring.`,
		Args:          noArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts, cmd)
		},
	}

	bindInputFlags(cmd, opts)

	return cmd
}

func runValidate(rootOpts *RootOptions, opts *InputOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	cfg, cases, err := loadInputs(cmd, opts)
	if err != nil {
		_ = formatter.Error(harness.Code(err), err.Error(), nil)
		// Invalid documents are a validation failure (exit code 1)
		return reportedExit(ExitFailure, err.Error())
	}

	result := ValidationResult{
		Valid:     true,
		Config:    cfg.Source,
		Command:   cfg.Command,
		Workdir:   cfg.Workdir,
		CasesPath: opts.CasesPath,
		Cases:     len(cases),
	}
	if cfg.Timeout > 0 {
		result.Timeout = cfg.Timeout.String()
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ runner config valid (%s)\n", result.Config)
	fmt.Fprintf(w, "  command: %s\n", result.Command)
	fmt.Fprintf(w, "  workdir: %s\n", result.Workdir)
	if result.Timeout != "" {
		fmt.Fprintf(w, "  timeout: %s\n", result.Timeout)
	}
	fmt.Fprintf(w, "✓ %d case(s) valid (%s)\n", result.Cases, result.CasesPath)
	return nil
}
