// Package cli provides the CLI presentation layer for the focus application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage/jsonl"
	"github.com/xolan/focus/internal/timeutil"
)

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	return record.FormatMinutes(minutes)
}

// FormatElapsedTime formats a duration as human-readable elapsed time
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	return record.FormatMinutes(record.FloorMinutes(d))
}

// FormatCycle renders a cycle as "Week 50 (12/08 - 12/14)".
func FormatCycle(c timeutil.Cycle) string {
	return fmt.Sprintf("Week %d (%s)", c.WeekNumber(), c.DisplayName())
}

// FormatProgress renders progress as "12h 30m / 40h (31%)".
func FormatProgress(p goal.Progress) string {
	return fmt.Sprintf("%s / %s (%.0f%%)", FormatDuration(p.Minutes), FormatDuration(p.Target), p.Percent)
}

// ProgressBar renders fraction (0..1) as a fixed-width text bar.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// FormatRecord renders a record on one line. Timed records show their span,
// clock sessions their clock times, manual records only the duration.
func FormatRecord(r record.Record) string {
	var b strings.Builder
	switch {
	case r.IsClockEntry():
		fmt.Fprintf(&b, "clock %s-%s", r.ClockInDisplay(), clockOutLabel(r))
	case r.StartTime != nil && r.EndTime != nil:
		fmt.Fprintf(&b, "%s-%s", r.StartTime.Format("15:04"), r.EndTime.Format("15:04"))
	default:
		b.WriteString("manual")
	}
	fmt.Fprintf(&b, "  %s", FormatDuration(r.DurationMinutes))
	if r.Notes != "" {
		fmt.Fprintf(&b, "  %s", r.Notes)
	}
	return b.String()
}

func clockOutLabel(r record.Record) string {
	if r.ClockOutTime == nil {
		return "..."
	}
	return r.ClockOutDisplay()
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning jsonl.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// FormatTimerStartTime formats the stopwatch start time for display
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("3:04 PM")
	if timeutil.SameDay(startedAt, now) {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}
