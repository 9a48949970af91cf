package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "uppercase Y confirms", input: "Y\n", want: true},
		{name: "lowercase y does not confirm", input: "y\n", want: false},
		{name: "N does not confirm", input: "N\n", want: false},
		{name: "empty does not confirm", input: "\n", want: false},
		{name: "Y without newline confirms", input: "Y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirmPrompt(bytes.NewBufferString(tt.input), &out, "Delete entry 1 of 2026-03-05?")
			if err != nil {
				t.Fatalf("confirm prompt returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if !strings.Contains(out.String(), "Type Y to confirm") {
				t.Fatalf("expected prompt output, got %q", out.String())
			}
		})
	}
}

func TestConfirmPrompt_NilInput(t *testing.T) {
	if _, err := confirmPrompt(nil, nil, "Delete?"); err == nil {
		t.Fatalf("expected error for missing input")
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "1", want: 0},
		{value: " 3 ", want: 2},
		{value: "0", wantErr: true},
		{value: "-2", wantErr: true},
		{value: "first", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parsePosition(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("position %q: expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Fatalf("position %q: unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Fatalf("position %q: expected %d, got %d", tt.value, tt.want, got)
		}
	}
}
