package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DayLayout is the layout of date keys, which also name the date files.
	DayLayout = "2006-01-02"
	// StampLayout is the layout of entry timestamps.
	StampLayout = "02/01/2006 15:04"
)

var dayKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func DayKey(value time.Time) string {
	return value.Format(DayLayout)
}

func Stamp(value time.Time) string {
	return value.Format(StampLayout)
}

// IsDateKey reports whether value has the YYYY-MM-DD shape.
func IsDateKey(value string) bool {
	return dayKeyPattern.MatchString(value)
}

// ValidateDateKey checks the shape and that the key names a real calendar day.
func ValidateDateKey(value string) error {
	if !IsDateKey(value) {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	if _, err := time.ParseInLocation(DayLayout, value, time.Local); err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	return nil
}

// MonthKey returns the YYYY-MM prefix of a date key.
func MonthKey(dayKey string) string {
	if len(dayKey) < 7 {
		return dayKey
	}
	return dayKey[:7]
}

// LeadingDay returns the first whitespace separated token of a prefixed timestamp.
func LeadingDay(timestamp string) string {
	fields := strings.Fields(timestamp)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// InRange reports whether start <= day <= end using lexicographic order.
func InRange(day, start, end string) bool {
	return day >= start && day <= end
}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// MonthRange returns the first and last date keys of the month containing value.
func MonthRange(value time.Time) (string, string) {
	first := time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location())
	last := first.AddDate(0, 1, -1)
	return DayKey(first), DayKey(last)
}
