package record

import (
	"fmt"
	"regexp"
	"strconv"
)

// combinedTimePattern matches combined time duration in XhYm format (e.g., "1h30m", "2h15m")
var combinedTimePattern = regexp.MustCompile(`^(\d+)h(\d+)m$`)

// timePattern matches time duration in Yh (hours) or Ym (minutes) format
var timePattern = regexp.MustCompile(`^(\d+)(h|m)$`)

// MaxDurationMinutes is the maximum allowed duration per manual record (24 hours)
const MaxDurationMinutes = 24 * 60

// ParseDuration parses a time duration string in Yh, Ym, or XhYm format
// and returns the duration in minutes.
// Valid inputs: "2h" (returns 120), "30m" (returns 30), "1h30m" (returns 90)
// Invalid inputs: "invalid", "0h", "0m", "0h0m", values exceeding 24h
func ParseDuration(input string) (minutes int, err error) {
	minutes, err = parseMinutes(input)
	if err != nil {
		return 0, err
	}
	if minutes == 0 {
		return 0, fmt.Errorf("invalid duration: duration cannot be zero")
	}
	if minutes > MaxDurationMinutes {
		return 0, fmt.Errorf("invalid duration: exceeds maximum of 24 hours (%d minutes)", MaxDurationMinutes)
	}
	return minutes, nil
}

// ParseTarget parses a weekly target in minutes. It accepts the ParseDuration
// forms without the 24 hour cap, or a bare number of hours ("40").
func ParseTarget(input string) (int, error) {
	minutes, err := parseMinutes(input)
	if err != nil {
		hours, convErr := strconv.Atoi(input)
		if convErr != nil {
			return 0, fmt.Errorf("invalid target: expected hours (40), Xh, Xm, or XhYm, got %s", input)
		}
		minutes = hours * 60
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("invalid target: must be positive, got %s", input)
	}
	return minutes, nil
}

func parseMinutes(input string) (int, error) {
	if m := combinedTimePattern.FindStringSubmatch(input); m != nil {
		hours, err1 := strconv.Atoi(m[1])
		mins, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
		}
		return hours*60 + mins, nil
	}

	m := timePattern.FindStringSubmatch(input)
	if m == nil {
		return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
	}
	if m[2] == "h" {
		return value * 60, nil
	}
	return value, nil
}
