package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements ReportWriter by writing an .xlsx workbook to disk.
type XLSXWriter struct {
	path string
	loc  *time.Location
}

// NewXLSXWriter creates an XLSXWriter that saves the workbook at path.
// History dates are rendered in loc.
func NewXLSXWriter(path string, loc *time.Location) *XLSXWriter {
	if loc == nil {
		loc = time.UTC
	}
	return &XLSXWriter{path: path, loc: loc}
}

// Write builds the workbook from scratch and saves it, replacing any
// previous export at the same path.
func (w *XLSXWriter) Write(_ context.Context, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Summary", buildSummaryRows(r)},
		{"Allocation", buildAllocationRows(r)},
		{"Assets", buildAssetRows(r)},
		{"History", buildHistoryRows(r, w.loc)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("renaming default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.name, err)
			}
		}
		for rowIdx, row := range sheets[i].rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("building cell reference: %w", err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("writing row to %s: %w", sheet.name, err)
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
