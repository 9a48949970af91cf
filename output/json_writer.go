package output

import (
	"encoding/json"
	"fmt"
	"os"

	"devjournal/journal"
	"devjournal/report"
)

type JSONWriter struct{}

func (w *JSONWriter) Write(path string, entries []journal.Entry) error {
	if entries == nil {
		entries = []journal.Entry{}
	}
	return writeJSON(path, entries)
}

func (w *JSONWriter) WriteReport(path string, r *report.ActivityReport) error {
	return writeJSON(path, r)
}

func writeJSON(path string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json output: %w", err)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write json output %s: %w", path, err)
	}
	return nil
}
