// =============================================================================
// SKUID Intake Report - Report Command Logic
// =============================================================================
//
// PROCESSING PIPELINE:
//   1. Check the extension of an explicit input argument
//   2. Load configuration (defaults when no file exists)
//   3. Configure logging
//   4. Resolve and validate the input path
//   5. Run the converter
//   6. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/skuid-intake-report/internal/config"
	"github.com/ginjaninja78/skuid-intake-report/internal/converter"
	"github.com/ginjaninja78/skuid-intake-report/internal/logging"
	"github.com/ginjaninja78/skuid-intake-report/internal/validation"
)

// outputDir is where the report is written: the working directory.
const outputDir = "."

// runProcess orchestrates a single report run.
func runProcess(cmd *cobra.Command, opts *rootOptions, args []string) error {
	// =========================================================================
	// STEP 1: CHECK ARGUMENT EXTENSION
	// =========================================================================
	// A wrong extension is reported even when the configuration is broken.

	if len(args) == 1 {
		if err := validation.ValidateInputExtension(args[0]); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 2: LOAD CONFIGURATION
	// =========================================================================
	// An explicitly passed --config must exist; the default file is optional.

	cfg, err := config.Load(opts.cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// =========================================================================
	// STEP 3: CONFIGURE LOGGING
	// =========================================================================

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level, cfg.LogFormat, cmd.ErrOrStderr()).With("run", uuid.New().String())

	// =========================================================================
	// STEP 4: RESOLVE INPUT
	// =========================================================================

	inputPath := cfg.DefaultInput
	if len(args) == 1 {
		inputPath = args[0]
	}

	if err := validation.ValidateInputPath(inputPath); err != nil {
		return err
	}

	// =========================================================================
	// STEP 5: RUN
	// =========================================================================

	result := converter.New(inputPath, outputDir, cfg, logger).Run()
	if result.Error != nil {
		return result.Error
	}

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== SKUID Intake Report ===")
	fmt.Fprintf(out, "Input:           %s\n", result.FilePath)
	fmt.Fprintf(out, "Output:          %s\n", result.OutputFile)
	if result.XLSXFile != "" {
		fmt.Fprintf(out, "Spreadsheet:     %s\n", result.XLSXFile)
	}
	fmt.Fprintf(out, "Models:          %d\n", result.Stats.Models)
	fmt.Fprintf(out, "Fields:          %d\n", result.Stats.Fields)
	fmt.Fprintf(out, "Labels applied:  %d\n", result.Stats.LabelsApplied)
	fmt.Fprintf(out, "Help applied:    %d\n", result.Stats.HelpApplied)
	if len(result.Findings) > 0 {
		fmt.Fprintf(out, "Warnings:        %d\n", len(result.Findings))
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime)

	return nil
}
