package output

import (
	"fmt"
	"strings"

	"devjournal/journal"
	"devjournal/report"
)

// Writer exports raw journal entries.
type Writer interface {
	Write(path string, entries []journal.Entry) error
}

// ReportWriter exports an activity report.
type ReportWriter interface {
	WriteReport(path string, r *report.ActivityReport) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func ReportWriterForFormat(format string) (ReportWriter, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
