package duration

import (
	"math"
	"testing"
)

func TestHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "empty", input: "", want: 0},
		{name: "hours and minutes", input: "1h30", want: 1.5},
		{name: "hours with minute suffix", input: "1h 30min", want: 1.5},
		{name: "decimal hours", input: "2.5h", want: 2.5},
		{name: "decimal comma hours", input: "0,5h", want: 0.5},
		{name: "upper case", input: " 2H ", want: 2},
		{name: "minutes suffix", input: "45min", want: 0.75},
		{name: "minutes word", input: "90 minutes", want: 1.5},
		{name: "bare small number is hours", input: "2", want: 2},
		{name: "bare fraction is hours", input: "1.5", want: 1.5},
		{name: "bare large number is minutes", input: "90", want: 1.5},
		{name: "bare ten is minutes", input: "10", want: 10.0 / 60},
		{name: "garbage", input: "abc", want: 0},
		{name: "garbage minutes after hours", input: "2hxyz", want: 2},
		{name: "garbage hours before h", input: "xh30", want: 0.5},
		{name: "negative clamps", input: "-3h", want: 0},
		{name: "nan", input: "NaN", want: 0},
		{name: "infinity", input: "inf", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Hours(tc.input)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("unexpected hours for %q: want %v, got %v", tc.input, tc.want, got)
			}
		})
	}
}

func TestMinutes(t *testing.T) {
	t.Parallel()

	if got := Minutes("1h15"); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}
