package record

import (
	"fmt"
	"time"
)

// FloorMinutes returns the whole minutes in d, or 0 for non-positive durations.
func FloorMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Describe renders minutes in long form: "30 minutes", "1 hour 15 minutes".
func Describe(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d %s %d %s", hours, plural("hour", hours), mins, plural("minute", mins))
	}
	return fmt.Sprintf("%d %s", mins, plural("minute", mins))
}

// FormatMinutes renders minutes compactly.
// Examples: "30m", "2h", "1h 30m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
