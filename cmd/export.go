package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"devjournal/output"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportFrom   string
	exportTo     string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal entries or a report to CSV/Excel/JSON",
	Long: `Export the journal for a date range.

Modes:
- raw: one row per entry (timestamp, project, type, hours, fields, tags, issues, links)
- report: the aggregated activity report (summary, projects, tags, activity types, daily, monthly)

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export this month's entries to CSV
  devjournal export --mode raw --output ./entries.csv

  # Export a quarter report to Excel, one sheet per section
  devjournal export --mode report --from 2026-01-01 --to 2026-03-31 --output ./q1.xlsx

  # Force JSON independent of extension
  devjournal export --mode report --month 2026-02 --format json --output ./february.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		start, end, err := resolveRangeValues(exportFrom, exportTo, exportMonth, time.Now())
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "raw":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			entries, err := collectRange(cmd.Context(), cfg, start, end)
			if err != nil {
				return err
			}
			if err := writer.Write(exportOutput, entries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: raw, Format: %s, File: %s\n", len(entries), format, exportOutput)
		case "report":
			writer, writerErr := output.ReportWriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			r, err := runReport(cmd.Context(), cfg, start, end, 0)
			if err != nil {
				return err
			}
			if err := writer.WriteReport(exportOutput, r); err != nil {
				return err
			}
			fmt.Printf("Export completed. Entries: %d, Mode: report, Format: %s, File: %s\n", r.TotalEntries, format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: raw, report)", exportMode)
		}
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	case "json":
		return "json"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw|report")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|json (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First date YYYY-MM-DD (default first day of current month)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last date YYYY-MM-DD (default last day of current month)")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Export one month YYYY-MM")

	_ = exportCmd.MarkFlagRequired("output")
}
