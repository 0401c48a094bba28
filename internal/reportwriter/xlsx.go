package reportwriter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/skuid-intake-report/internal/skuid"
)

// XLSXOptions contains options for spreadsheet generation.
type XLSXOptions struct {
	// Sheet is the worksheet name.
	// Default: "Fields"
	Sheet string
}

// DefaultXLSXOptions returns the default spreadsheet options.
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{Sheet: "Fields"}
}

// WriteXLSX writes the report as a single-sheet workbook: a bold, frozen
// header row with an auto-filter, then one row per field.
func WriteXLSX(w io.Writer, rows []skuid.Row, options XLSXOptions) error {
	if options.Sheet == "" {
		options.Sheet = DefaultXLSXOptions().Sheet
	}

	f := excelize.NewFile()
	defer f.Close()

	// A new workbook starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), options.Sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeXLSXRow(f, options.Sheet, 1, skuid.Header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeXLSXRow(f, options.Sheet, i+2, row.Record()); err != nil {
			return err
		}
	}

	if err := styleXLSXHeader(f, options.Sheet, len(rows)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeXLSXRow writes cells as strings so values like "true" or "00123" are
// never coerced into booleans or numbers.
func writeXLSXRow(f *excelize.File, sheet string, rowNumber int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNumber, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNumber, err)
	}
	return nil
}

// styleXLSXHeader bolds and freezes the header row and adds an auto-filter
// over the data range.
func styleXLSXHeader(f *excelize.File, sheet string, rowCount int) error {
	lastColumn, err := excelize.ColumnNumberToName(len(skuid.Header))
	if err != nil {
		return fmt.Errorf("invalid header width: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastColumn+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	filterRange := fmt.Sprintf("A1:%s%d", lastColumn, rowCount+1)
	if err := f.AutoFilter(sheet, filterRange, nil); err != nil {
		return fmt.Errorf("failed to add auto-filter: %w", err)
	}

	return nil
}
