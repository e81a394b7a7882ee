package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/casecheck/internal/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Lang    string // BCP 47 tag for text output
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the casecheck CLI.
// Invoked without a subcommand it behaves like "casecheck run".
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "casecheck",
		Short: "casecheck - black-box JSON fixture harness",
		Long: `Run a program once per JSON fixture and compare what it prints.

Each case feeds "input" to the program's stdin and expects stdout to be the
JSON text of "output". Cases run in order and the run stops at the first
failure.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := report.NewPrinter(opts.Lang); err != nil {
				return WrapExitError(ExitCommandError, "invalid --lang", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(runOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language of text output (en|pt-BR)")

	bindRunFlags(cmd, runOpts)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown command or argument %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
