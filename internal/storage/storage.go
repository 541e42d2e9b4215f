// Package storage defines the persistence contract for goals and records.
// Backends live in the sqlite and jsonl subpackages.
package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/timeutil"
)

var (
	// ErrNotFound is returned when a goal or record id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would create a second clock session
	// for the same goal and day.
	ErrConflict = errors.New("a clock session already exists for this goal and day")
)

// DayLayout formats the calendar day a record is attributed to.
const DayLayout = "2006-01-02"

// GoalFilter narrows a goal query.
type GoalFilter struct {
	ActiveOnly bool
}

// RecordFilter narrows a record query. From and To bound Date as [From, To);
// a zero value leaves that side open.
type RecordFilter struct {
	GoalID     string
	From       time.Time
	To         time.Time
	Descending bool
	// ClockOnly keeps records holding a clock session, reset ones included.
	ClockOnly bool
}

// Store persists goals and records. Implementations must be safe for use by
// a single writer with concurrent readers.
type Store interface {
	InsertGoal(ctx context.Context, g goal.Goal) error
	UpdateGoal(ctx context.Context, g goal.Goal) error
	// DeleteGoal removes the goal and every record that references it.
	DeleteGoal(ctx context.Context, id string) error
	// Goals returns goals newest first.
	Goals(ctx context.Context, f GoalFilter) ([]goal.Goal, error)

	InsertRecord(ctx context.Context, r record.Record) error
	UpdateRecord(ctx context.Context, r record.Record) error
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (record.Record, error)
	Records(ctx context.Context, f RecordFilter) ([]record.Record, error)

	Close() error
}

// Match reports whether r satisfies the filter.
func (f RecordFilter) Match(r record.Record) bool {
	if f.GoalID != "" && r.GoalID != f.GoalID {
		return false
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !r.Date.Before(f.To) {
		return false
	}
	if f.ClockOnly && !r.HoldsClockSession() {
		return false
	}
	return true
}

// ForCycle returns a filter selecting the goal's records in c.
func ForCycle(goalID string, c timeutil.Cycle) RecordFilter {
	return RecordFilter{GoalID: goalID, From: c.Start, To: c.Upper()}
}

// ForDay returns a filter selecting the goal's records on day's calendar day.
func ForDay(goalID string, day time.Time) RecordFilter {
	start, end := timeutil.Today(day)
	return RecordFilter{GoalID: goalID, From: start, To: end}
}

// DayKey returns the calendar day a record is attributed to, in the record's location.
func DayKey(r record.Record) string {
	return r.Date.Format(DayLayout)
}

// ClockConflict reports whether candidate would be a second clock-bearing
// record for its goal and day among existing.
func ClockConflict(existing []record.Record, candidate record.Record) bool {
	if !candidate.HoldsClockSession() {
		return false
	}
	day := DayKey(candidate)
	for _, r := range existing {
		if r.ID != candidate.ID && r.GoalID == candidate.GoalID && r.HoldsClockSession() && DayKey(r) == day {
			return true
		}
	}
	return false
}

// SortRecords orders records by date then creation time.
func SortRecords(records []record.Record, descending bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if descending {
			a, b = b, a
		}
		if a.Date.Equal(b.Date) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Date.Before(b.Date)
	})
}

// SortGoals orders goals newest first.
func SortGoals(goals []goal.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
}
