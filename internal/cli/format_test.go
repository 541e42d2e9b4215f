package cli

import (
	"testing"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage/jsonl"
	"github.com/xolan/focus/internal/timeutil"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{1, "1m"},
		{30, "30m"},
		{59, "59m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{2400, "40h"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			result := FormatDuration(tt.minutes)
			if result != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, result, tt.want)
			}
		})
	}
}

func TestFormatElapsedTime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0m"},
		{59 * time.Second, "0m"},
		{1 * time.Minute, "1m"},
		{90*time.Minute + 45*time.Second, "1h 30m"},
		{120 * time.Minute, "2h"},
		{-time.Minute, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			result := FormatElapsedTime(tt.duration)
			if result != tt.want {
				t.Errorf("FormatElapsedTime(%v) = %q, want %q", tt.duration, result, tt.want)
			}
		})
	}
}

func TestFormatCycle(t *testing.T) {
	c := timeutil.CycleContaining(time.Date(2025, 12, 13, 14, 0, 0, 0, time.UTC), time.Monday)
	if got := FormatCycle(c); got != "Week 50 (12/08 - 12/14)" {
		t.Errorf("FormatCycle() = %q", got)
	}
}

func TestFormatProgress(t *testing.T) {
	g := goal.Goal{WeeklyTargetMinutes: 2400}
	if got := FormatProgress(g.Progress(750)); got != "12h 30m / 40h (31%)" {
		t.Errorf("FormatProgress() = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		width    int
		want     string
	}{
		{"empty", 0, 10, "[----------]"},
		{"half", 0.5, 10, "[#####-----]"},
		{"full", 1, 4, "[####]"},
		{"over target", 1.7, 4, "[####]"},
		{"negative", -1, 4, "[----]"},
		{"no width", 0.5, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.fraction, tt.width); got != tt.want {
				t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.fraction, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	day := time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC)
	start := day.Add(9 * time.Hour)
	end := day.Add(10*time.Hour + 45*time.Minute)

	open := record.NewClockSession("g", day, start, day)
	closed := open
	closed.SetClockOut(day.Add(17*time.Hour + 30*time.Minute))
	closed.CreditWorkDuration()

	tests := []struct {
		name string
		r    record.Record
		want string
	}{
		{"manual", record.NewManual("g", day, 30, "reading", day), "manual  30m  reading"},
		{"manual without notes", record.NewManual("g", day, 90, "", day), "manual  1h 30m"},
		{"timed", record.NewTimed("g", start, end, "review", day), "09:00-10:45  1h 45m  review"},
		{"clocked in", open, "clock 09:00-...  0m"},
		{"clocked out", closed, "clock 09:00-17:30  8h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecord(tt.r); got != tt.want {
				t.Errorf("FormatRecord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCorruptionWarning(t *testing.T) {
	tests := []struct {
		name     string
		warning  jsonl.ParseWarning
		expected string
	}{
		{
			name:     "short content",
			warning:  jsonl.ParseWarning{LineNumber: 3, Content: "{bad", Error: "unexpected EOF"},
			expected: "  Line 3: {bad (error: unexpected EOF)",
		},
		{
			name: "long content is truncated",
			warning: jsonl.ParseWarning{
				LineNumber: 7,
				Content:    "0123456789012345678901234567890123456789012345678901234",
				Error:      "invalid character",
			},
			expected: "  Line 7: 01234567890123456789012345678901234567890123456... (error: invalid character)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCorruptionWarning(tt.warning); got != tt.expected {
				t.Errorf("FormatCorruptionWarning() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word  string
		count int
		want  string
	}{
		{"record", 1, "record"},
		{"record", 0, "records"},
		{"day", 3, "days"},
	}

	for _, tt := range tests {
		if got := Pluralize(tt.word, tt.count); got != tt.want {
			t.Errorf("Pluralize(%q, %d) = %q, want %q", tt.word, tt.count, got, tt.want)
		}
	}
}

func TestFormatTimerStartTime(t *testing.T) {
	now := time.Date(2025, 12, 13, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startedAt time.Time
		want      string
	}{
		{"today", time.Date(2025, 12, 13, 9, 5, 0, 0, time.UTC), "today at 9:05 AM"},
		{"yesterday", time.Date(2025, 12, 12, 22, 30, 0, 0, time.UTC), "Fri Dec 12 at 10:30 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimerStartTime(tt.startedAt, now); got != tt.want {
				t.Errorf("FormatTimerStartTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
