// =============================================================================
// SKUID Intake Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command does
// the work itself: it takes the SKUID page export as its only positional
// argument and writes intakeXMLResults.csv into the working directory.
//
// COBRA CLI STRUCTURE:
//   rootCmd (intake [file.xml])
//   └── versionCmd (intake version)
//
// EXIT CODES:
//   0  report written
//   1  any failure (unreadable or malformed input, bad configuration, ...)
//   2  usage error (wrong file extension, too many arguments)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/skuid-intake-report/internal/config"
	"github.com/ginjaninja78/skuid-intake-report/internal/validation"
)

// rootOptions holds the global flag values for one command tree.
type rootOptions struct {
	// cfgFile is the path to the configuration file.
	cfgFile string

	// verbose forces debug logging.
	verbose bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "intake [file.xml]",
		Short: "SKUID Intake Report - Flatten a SKUID page export into a field CSV",
		Long: `intake reads a SKUID page export (XML), lists every field of every model
and resolves the labels and inline-help flags set in basic field editors.
One row per field is written to intakeXMLResults.csv in the working directory.

Columns:
  Field Name, Field Label, Model, Object, UI-Only, UI-Only Formula, Show Inline Help

Example Usage:
  intake                         # Read intake.xml from the working directory
  intake exports/AccountPage.xml # Read a specific export
  intake -v page.xml             # Log each pipeline stage`,

		Args:          maximumOneInput,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts, args)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional unless set explicitly)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// maximumOneInput accepts zero or one positional argument.
func maximumOneInput(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &validation.UsageError{
			Message: fmt.Sprintf("accepts at most one input file, received %d", len(args)),
		}
	}
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI and exits with the matching exit code on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *validation.UsageError
	if errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

// reportError prints usage errors verbatim and everything else prefixed.
func reportError(w io.Writer, err error) {
	var usageErr *validation.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, usageErr.Message)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
