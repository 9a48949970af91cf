package duration

import (
	"math"
	"strconv"
	"strings"
)

// Bare numbers below this value are read as hours, larger ones as minutes.
const bareHoursLimit = 10

var minuteTokens = []string{"minutes", "minute", "min"}

// Hours converts free-form duration text such as "1h30", "2.5h", "45min" or
// "90" to fractional hours. It never fails: unreadable fragments count as zero
// and the result is never negative.
func Hours(text string) float64 {
	return Minutes(text) / 60
}

// Minutes is Hours expressed in minutes.
func Minutes(text string) float64 {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return 0
	}

	var minutes float64
	switch {
	case strings.Contains(cleaned, "h"):
		hoursPart, rest, _ := strings.Cut(cleaned, "h")
		minutes = parseNumber(hoursPart)*60 + parseNumber(stripMinuteTokens(rest))
	case strings.Contains(cleaned, "min"):
		minutes = parseNumber(stripMinuteTokens(cleaned))
	default:
		value := parseNumber(cleaned)
		if value < bareHoursLimit {
			minutes = value * 60
		} else {
			minutes = value
		}
	}

	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return minutes
}

func stripMinuteTokens(value string) string {
	for _, token := range minuteTokens {
		value = strings.ReplaceAll(value, token, "")
	}
	return value
}

func parseNumber(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
