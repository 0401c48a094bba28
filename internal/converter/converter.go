// =============================================================================
// SKUID Intake Report - Converter Module
// =============================================================================
//
// This module contains the report pipeline for a single SKUID page export.
//
// CONVERSION PIPELINE:
//   1. Parse the XML document into a node tree
//   2. Extract models and fields, collect overrides, join them into rows
//   3. Audit the result and log data-quality findings
//   4. Render the CSV report (and the optional XLSX copy) in memory
//   5. Replace the output files
//
// Nothing is written until every earlier step has succeeded.
//
// =============================================================================

package converter

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/skuid-intake-report/internal/config"
	"github.com/ginjaninja78/skuid-intake-report/internal/reportwriter"
	"github.com/ginjaninja78/skuid-intake-report/internal/skuid"
	"github.com/ginjaninja78/skuid-intake-report/internal/validation"
	"github.com/ginjaninja78/skuid-intake-report/internal/xmltree"
	"github.com/ginjaninja78/skuid-intake-report/pkg/utils"
)

// OutputFileName is the fixed name of the CSV report.
const OutputFileName = "intakeXMLResults.csv"

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a page export.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the CSV report.
	// This is empty if processing failed.
	OutputFile string

	// XLSXFile is the path to the spreadsheet report, when enabled.
	XLSXFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// The CSV report is written before the spreadsheet, so when only the
	// spreadsheet write fails, OutputFile is set and the CSV on disk has
	// already been replaced.
	Error error

	// Findings are the data-quality observations from the audit.
	Findings []validation.Finding

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	Models             int
	Fields             int
	SkippedFields      int
	LabelsApplied      int
	HelpApplied        int
	UnmatchedOverrides int
	ProcessingTime     time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter produces the field report for one input document.
type Converter struct {
	inputPath string
	config    *config.Config
	files     *utils.FileManager
	logger    *slog.Logger
}

// New creates a Converter that reads inputPath and writes into outputDir.
func New(inputPath, outputDir string, cfg *config.Config, logger *slog.Logger) *Converter {
	return &Converter{
		inputPath: inputPath,
		config:    cfg,
		files:     utils.NewFileManager(outputDir),
		logger:    logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline. Failures are reported in Result.Error.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		Success:  false,
	}

	c.logger.Info("Processing file", "path", c.inputPath)

	// =========================================================================
	// STEP 1: PARSE XML
	// =========================================================================

	root, err := xmltree.ParseFile(c.inputPath)
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: BUILD REPORT
	// =========================================================================

	report, err := skuid.BuildReport(root)
	if err != nil {
		result.Error = fmt.Errorf("failed to build report: %w", err)
		return result
	}

	result.Stats = ProcessingStats{
		Models:             len(report.Models),
		Fields:             report.FieldCount(),
		SkippedFields:      report.SkippedFields,
		LabelsApplied:      report.LabelsApplied,
		HelpApplied:        report.HelpApplied,
		UnmatchedOverrides: len(report.Unmatched),
	}
	c.logger.Debug("Built report",
		"models", result.Stats.Models,
		"fields", result.Stats.Fields,
		"labels", len(report.Overrides.Labels),
		"help", len(report.Overrides.Help),
	)

	// =========================================================================
	// STEP 3: AUDIT
	// =========================================================================

	result.Findings = validation.Audit(report)
	for _, finding := range result.Findings {
		c.logger.Warn("Data quality", "kind", string(finding.Kind), "detail", finding.Message)
	}

	// =========================================================================
	// STEP 4: RENDER
	// =========================================================================

	var csvBuf bytes.Buffer
	if err := reportwriter.WriteCSV(&csvBuf, report.Rows, c.csvOptions()); err != nil {
		result.Error = fmt.Errorf("failed to render CSV: %w", err)
		return result
	}

	var xlsxBuf *bytes.Buffer
	if c.config.XLSX.Path != "" {
		xlsxBuf = &bytes.Buffer{}
		options := reportwriter.XLSXOptions{Sheet: c.config.XLSX.Sheet}
		if err := reportwriter.WriteXLSX(xlsxBuf, report.Rows, options); err != nil {
			result.Error = fmt.Errorf("failed to render XLSX: %w", err)
			return result
		}
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILES
	// =========================================================================

	outputPath, err := c.files.Replace(OutputFileName, csvBuf.Bytes())
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath
	c.logger.Info("Wrote report", "path", outputPath, "rows", len(report.Rows))

	if xlsxBuf != nil {
		xlsxPath, err := c.files.Replace(c.config.XLSX.Path, xlsxBuf.Bytes())
		if err != nil {
			result.Error = fmt.Errorf("failed to write spreadsheet: %w", err)
			return result
		}
		result.XLSXFile = xlsxPath
		c.logger.Info("Wrote spreadsheet", "path", xlsxPath)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// csvOptions maps the configuration onto writer options.
func (c *Converter) csvOptions() reportwriter.CSVOptions {
	return reportwriter.CSVOptions{
		BOM:  c.config.CSV.BOM,
		CRLF: c.config.CSV.LineEnding != config.LineEndingLF,
	}
}
