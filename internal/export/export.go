// Package export writes V-QUEST results in formats other than the raw archive text.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sadewadee/vquest/internal/airr"
)

// SheetName is the worksheet holding the AIRR table
const SheetName = "AIRR"

// AIRRToXLSX writes an AIRR table as a single-sheet workbook with a bold header row
func AIRRToXLSX(tsv string, w io.Writer) error {
	table, err := airr.Parse(tsv)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range table.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	if len(table.Header) > 0 {
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}

		lastCol, _ := excelize.CoordinatesToCellName(len(table.Header), 1)
		if err := f.SetCellStyle(SheetName, "A1", lastCol, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}

		if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	for r, row := range table.Rows {
		for c, val := range row {
			// AIRR values stay text so identifiers like 001 and gapped sequences survive
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(SheetName, cell, val); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
