// =============================================================================
// SKUID Intake Report - Validation Module
// =============================================================================
//
// This module holds the two kinds of checks the tool performs:
//
//   1. USAGE CHECKS (fatal)
//      The input path must name an existing file ending in ".xml". A wrong
//      extension is reported as a *UsageError so the command layer can map
//      it to its own exit code.
//
//   2. DATA-QUALITY AUDIT (never fatal)
//      After the report is built, Audit lists what was silently skipped:
//      fields without an id, override records without a model binding, and
//      override records that addressed no extracted field. The findings are
//      logged as warnings; they never stop the run.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/skuid-intake-report/internal/skuid"
)

// =============================================================================
// USAGE ERRORS
// =============================================================================

// InputExtension is the only accepted input file suffix.
const InputExtension = ".xml"

// UsageError reports a command-line mistake.
type UsageError struct {
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

// ValidateInputExtension checks only the literal ".xml" suffix.
func ValidateInputExtension(path string) error {
	if !strings.HasSuffix(path, InputExtension) {
		return &UsageError{Message: "the file type must be " + InputExtension}
	}
	return nil
}

// ValidateInputPath checks that path ends in ".xml" and names a regular file.
//
// The suffix check is literal and case sensitive, and it runs before the file
// system is consulted, so a wrong extension never depends on the file existing.
func ValidateInputPath(path string) error {
	if err := ValidateInputExtension(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %s is a directory", path)
	}

	return nil
}

// =============================================================================
// DATA-QUALITY AUDIT
// =============================================================================

// FindingKind classifies an audit finding.
type FindingKind string

const (
	// FieldWithoutID marks model field elements dropped for lacking an id.
	FieldWithoutID FindingKind = "field_without_id"

	// UnboundOverride marks override records whose field editor or field
	// carries no model or field id.
	UnboundOverride FindingKind = "unbound_override"

	// UnmatchedOverride marks override records addressing a model/field
	// pair that was not extracted.
	UnmatchedOverride FindingKind = "unmatched_override"
)

// Finding is one data-quality observation.
type Finding struct {
	Kind    FindingKind
	Model   string
	Field   string
	Count   int
	Message string
}

// String renders the finding for logs.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Audit inspects a built report and returns its data-quality findings.
func Audit(report *skuid.Report) []Finding {
	var findings []Finding

	if report.SkippedFields > 0 {
		findings = append(findings, Finding{
			Kind:    FieldWithoutID,
			Count:   report.SkippedFields,
			Message: fmt.Sprintf("%d model field element(s) without an id were skipped", report.SkippedFields),
		})
	}

	for _, record := range report.Unmatched {
		model, modelOK := record.Model.Get()
		field, fieldOK := record.Field.Get()

		finding := Finding{Model: model, Field: field, Count: 1}
		switch {
		case !modelOK:
			finding.Kind = UnboundOverride
			finding.Message = fmt.Sprintf("field editor for field %q has no model binding", field)
		case !fieldOK:
			finding.Kind = UnboundOverride
			finding.Message = fmt.Sprintf("field editor on model %q has a field without an id", model)
		default:
			finding.Kind = UnmatchedOverride
			finding.Message = fmt.Sprintf("override for %s.%s matches no model field", model, field)
		}
		findings = append(findings, finding)
	}

	return findings
}
