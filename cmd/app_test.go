package cmd

import (
	"testing"
	"time"
)

func TestResolveDateValue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "", want: "2026-03-01"},
		{value: "today", want: "2026-03-01"},
		{value: "Yesterday", want: "2026-02-28"},
		{value: "2026-02-14", want: "2026-02-14"},
		{value: "2026-02-30", wantErr: true},
		{value: "../etc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveDateValue(tt.value, now)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("value %q: expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Fatalf("value %q: unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Fatalf("value %q: expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestResolveRangeValues(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)
	tests := []struct {
		name              string
		from, to, month   string
		wantStart, wantTo string
		wantErr           bool
	}{
		{name: "defaults to current month", wantStart: "2026-02-01", wantTo: "2026-02-28"},
		{name: "month flag", month: "2024-02", wantStart: "2024-02-01", wantTo: "2024-02-29"},
		{name: "from only keeps month end", from: "2026-02-05", wantStart: "2026-02-05", wantTo: "2026-02-28"},
		{name: "explicit range", from: "2025-12-01", to: "2026-01-31", wantStart: "2025-12-01", wantTo: "2026-01-31"},
		{name: "month with from", from: "2026-02-01", month: "2026-02", wantErr: true},
		{name: "bad month", month: "2026-13", wantErr: true},
		{name: "bad to", to: "31/01/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolveRangeValues(tt.from, tt.to, tt.month, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.wantStart || end != tt.wantTo {
				t.Fatalf("expected %s..%s, got %s..%s", tt.wantStart, tt.wantTo, start, end)
			}
		})
	}
}

func TestDetectExportFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"./out.csv":         "csv",
		"./out.XLSX":        "excel",
		"/tmp/report.json":  "json",
		"./no-extension":    "csv",
		"./report.xlsm":     "excel",
		"./notes.unknown.x": "csv",
	}
	for path, want := range tests {
		if got := detectExportFormat(path); got != want {
			t.Fatalf("path %q: expected %q, got %q", path, want, got)
		}
	}
}
