package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"devjournal/journal"
	"devjournal/report"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []journal.Entry) error {
	return writeCSVTables(path, []table{entryTable(entries)}, false)
}

// WriteReport writes each report section as a titled block separated by an empty line.
func (w *CSVWriter) WriteReport(path string, r *report.ActivityReport) error {
	return writeCSVTables(path, reportTables(r), true)
}

func writeCSVTables(path string, tables []table, titled bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for i, tbl := range tables {
		if titled {
			if i > 0 {
				if err := writer.Write([]string{}); err != nil {
					return fmt.Errorf("write csv separator: %w", err)
				}
			}
			if err := writer.Write([]string{"# " + tbl.Name}); err != nil {
				return fmt.Errorf("write csv section title: %w", err)
			}
		}
		if err := writer.Write(tbl.Headers); err != nil {
			return fmt.Errorf("write csv headers: %w", err)
		}
		for _, values := range tbl.Rows {
			row := make([]string, 0, len(values))
			for _, value := range values {
				row = append(row, cellText(value))
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
