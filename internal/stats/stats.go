// Package stats derives view-ready collections and totals from records.
// Every function is pure: no I/O, and inputs are never modified.
package stats

import (
	"sort"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/timeutil"
)

// DayTotal is the minutes attributed to a single calendar day.
type DayTotal struct {
	Date    time.Time
	Minutes int
}

// DayGroup holds the records of one calendar day.
type DayGroup struct {
	Date    time.Time
	Records []record.Record
	Minutes int
}

// Summary contains aggregated statistics for a cycle
type Summary struct {
	TotalMinutes         int
	EntryCount           int
	DaysWithEntries      int
	AverageMinutesPerDay float64
	WorkMinutes          int
	Progress             goal.Progress
}

// TodaysRecords returns the goal's records dated within [start of today, start of tomorrow),
// newest first.
func TodaysRecords(all []record.Record, goalID string, now time.Time) []record.Record {
	start, end := timeutil.Today(now)
	out := filter(all, goalID, start, end)
	sortDescending(out)
	return out
}

// CurrentWeekRecords returns the goal's records in the cycle containing now, oldest first.
func CurrentWeekRecords(all []record.Record, g goal.Goal, now time.Time) []record.Record {
	return RecordsInCycle(all, g.ID, timeutil.CycleContaining(now, g.WeekStartDay.Weekday()))
}

// RecordsInCycle returns the goal's records dated within [cycle start, cycle upper), oldest first.
func RecordsInCycle(all []record.Record, goalID string, c timeutil.Cycle) []record.Record {
	out := filter(all, goalID, c.Start, c.Upper())
	sortAscending(out)
	return out
}

// WeekProgressMinutes sums DurationMinutes over records.
func WeekProgressMinutes(records []record.Record) int {
	total := 0
	for _, r := range records {
		total += r.DurationMinutes
	}
	return total
}

// DailyStats returns one entry per cycle day with the DurationMinutes logged on it.
func DailyStats(records []record.Record, c timeutil.Cycle) []DayTotal {
	return perDay(records, c, func(r record.Record) int { return r.DurationMinutes })
}

// DailyWorkStats returns one entry per cycle day with the WorkDurationMinutes logged on it.
func DailyWorkStats(records []record.Record, c timeutil.Cycle) []DayTotal {
	return perDay(records, c, func(r record.Record) int { return r.WorkDurationMinutes })
}

func perDay(records []record.Record, c timeutil.Cycle, value func(record.Record) int) []DayTotal {
	days := c.Days()
	totals := make([]DayTotal, len(days))
	for i, day := range days {
		totals[i].Date = day
		for _, r := range records {
			if timeutil.SameDay(day, r.Date) {
				totals[i].Minutes += value(r)
			}
		}
	}
	return totals
}

// TodayWorkDuration returns the work duration of today's clock session for the goal.
// At most one clock-bearing record exists per goal and day, so the first match is used.
func TodayWorkDuration(todays []record.Record, goalID string) int {
	if r, ok := ClockRecord(todays, goalID); ok {
		return r.WorkDurationMinutes
	}
	return 0
}

// ClockRecord returns the first clock-bearing record for the goal.
func ClockRecord(records []record.Record, goalID string) (record.Record, bool) {
	for _, r := range records {
		if r.GoalID == goalID && r.IsClockEntry() {
			return r, true
		}
	}
	return record.Record{}, false
}

// TodayMinutes sums DurationMinutes over today's records.
func TodayMinutes(todays []record.Record) int {
	return WeekProgressMinutes(todays)
}

// GroupByDay groups records by calendar day, newest day first.
// Records within a day are ordered newest first.
func GroupByDay(records []record.Record) []DayGroup {
	sorted := make([]record.Record, len(records))
	copy(sorted, records)
	sortDescending(sorted)

	var groups []DayGroup
	for _, r := range sorted {
		day := timeutil.StartOfDay(r.Date)
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Records = append(groups[n-1].Records, r)
			groups[n-1].Minutes += r.DurationMinutes
			continue
		}
		groups = append(groups, DayGroup{Date: day, Records: []record.Record{r}, Minutes: r.DurationMinutes})
	}
	return groups
}

// Summarize computes totals for records within a cycle against the goal's target.
func Summarize(records []record.Record, c timeutil.Cycle, g goal.Goal) Summary {
	s := Summary{}
	days := make(map[string]bool)

	for _, r := range records {
		if !c.Contains(r.Date) {
			continue
		}
		s.TotalMinutes += r.DurationMinutes
		s.WorkMinutes += r.WorkDurationMinutes
		s.EntryCount++
		days[r.Date.Format("2006-01-02")] = true
	}

	s.DaysWithEntries = len(days)
	s.AverageMinutesPerDay = float64(s.TotalMinutes) / float64(timeutil.DaysPerCycle)
	s.Progress = g.Progress(s.TotalMinutes)
	return s
}

func filter(all []record.Record, goalID string, start, end time.Time) []record.Record {
	out := make([]record.Record, 0)
	for _, r := range all {
		if r.GoalID == goalID && timeutil.IsInHalfOpenRange(r.Date, start, end) {
			out = append(out, r)
		}
	}
	return out
}

func sortAscending(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].Date.Before(records[j].Date)
	})
}

func sortDescending(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Date.After(records[j].Date)
	})
}
