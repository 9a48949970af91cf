package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"devjournal/journal"
	"devjournal/report"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, entries []journal.Entry) error {
	return writeExcelTables(path, []table{entryTable(entries)})
}

// WriteReport writes one sheet per report section.
func (w *ExcelWriter) WriteReport(path string, r *report.ActivityReport) error {
	return writeExcelTables(path, reportTables(r))
}

func writeExcelTables(path string, tables []table) error {
	file := excelize.NewFile()
	defer file.Close()

	for i, tbl := range tables {
		sheet := tbl.Name
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename excel sheet %s: %w", sheet, err)
			}
		} else if _, err := file.NewSheet(sheet); err != nil {
			return fmt.Errorf("create excel sheet %s: %w", sheet, err)
		}

		for col, header := range tbl.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := file.SetCellValue(sheet, cell, header); err != nil {
				return fmt.Errorf("set excel header %s: %w", cell, err)
			}
		}

		for rowIndex, values := range tbl.Rows {
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIndex+2)
				if err := file.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("set excel value %s: %w", cell, err)
				}
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
