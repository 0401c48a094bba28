// =============================================================================
// SKUID Intake Report - Report Writer Module
// =============================================================================
//
// This module renders report rows into output documents. Two formats exist:
//
//   CSV   (always)   the fixed-name intakeXMLResults.csv report
//   XLSX  (optional) a spreadsheet copy with a styled, filterable header
//
// Both writers render to an io.Writer; callers buffer the result and hand it
// to the file manager, so a failed render never leaves a partial file.
//
// CSV LAYOUT:
//   Field Name,Field Label,Model,Object,UI-Only,UI-Only Formula,Show Inline Help
//   Name,Account Name,M1,Account,,,true
//
// =============================================================================

package reportwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/skuid-intake-report/internal/skuid"
)

// =============================================================================
// CSV OPTIONS
// =============================================================================

// CSVOptions contains options for CSV generation.
type CSVOptions struct {
	// BOM prefixes the output with a UTF-8 byte order mark.
	// Default: false
	BOM bool

	// CRLF terminates lines with "\r\n" instead of "\n".
	// Default: true
	CRLF bool
}

// DefaultCSVOptions returns the default CSV options.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		BOM:  false,
		CRLF: true,
	}
}

// =============================================================================
// CSV GENERATION
// =============================================================================

// WriteCSV writes the fixed header followed by one record per row.
//
// Cells are quoted only when they contain the delimiter, a quote, a line
// break or leading whitespace. Cell contents are written unchanged; the
// line ending option applies to record terminators only.
func WriteCSV(w io.Writer, rows []skuid.Row, options CSVOptions) error {
	out := w

	var bom *transform.Writer
	if options.BOM {
		bom = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		out = bom
	}

	records := newRecordWriter(out, options.CRLF)

	if err := records.write(skuid.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		if err := records.write(row.Record()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if bom != nil {
		if err := bom.Close(); err != nil {
			return fmt.Errorf("failed to encode CSV: %w", err)
		}
	}

	return nil
}

// recordWriter encodes one record at a time with encoding/csv in "\n" mode
// and replaces only the trailing newline with the configured terminator.
// csv.Writer.UseCRLF would also rewrite line breaks inside quoted cells.
type recordWriter struct {
	out        io.Writer
	terminator []byte
	buf        bytes.Buffer
	encoder    *csv.Writer
}

func newRecordWriter(out io.Writer, crlf bool) *recordWriter {
	rw := &recordWriter{out: out, terminator: []byte("\n")}
	if crlf {
		rw.terminator = []byte("\r\n")
	}
	rw.encoder = csv.NewWriter(&rw.buf)
	return rw
}

func (rw *recordWriter) write(record []string) error {
	rw.buf.Reset()
	if err := rw.encoder.Write(record); err != nil {
		return err
	}
	rw.encoder.Flush()
	if err := rw.encoder.Error(); err != nil {
		return err
	}

	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	if _, err := rw.out.Write(line); err != nil {
		return err
	}
	_, err := rw.out.Write(rw.terminator)
	return err
}
