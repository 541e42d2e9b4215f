// Package service provides the business logic layer for the focus application.
// It owns the published state (active goal, today's and this week's records),
// serializes every mutation through a single writer, and gives the CLI and
// TUI frontends one API over the storage, timer, config and stats packages.
package service

import (
	"errors"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/storage/jsonl"
	"github.com/xolan/focus/internal/timer"
	"github.com/xolan/focus/internal/timeutil"
)

var (
	// ErrStorageUnavailable is returned when the store cannot be opened or created.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidInput is returned when a mutation is rejected before anything is persisted.
	ErrInvalidInput = errors.New("invalid input")
)

// Snapshot is the published state presentation layers render from.
// It is rebuilt after every successful mutation.
type Snapshot struct {
	Goal                goal.Goal
	TodaysRecords       []record.Record // newest first
	CurrentWeekRecords  []record.Record // oldest first
	CurrentWeekProgress int
	Cycle               timeutil.Cycle
	RefreshedAt         time.Time
	// Degraded is set when the last refresh could not read records and
	// fell back to empty lists. LastError holds the cause.
	Degraded  bool
	LastError error
}

func (s Snapshot) clone() Snapshot {
	s.TodaysRecords = append([]record.Record(nil), s.TodaysRecords...)
	s.CurrentWeekRecords = append([]record.Record(nil), s.CurrentWeekRecords...)
	return s
}

// Progress returns the current week's progress toward the goal.
func (s Snapshot) Progress() goal.Progress {
	return s.Goal.Progress(s.CurrentWeekProgress)
}

// TimerStatus represents the current state of the stopwatch
type TimerStatus struct {
	Running     bool
	State       *timer.TimerState
	ElapsedTime time.Duration
}

// WeeklyReport contains the statistics for the current cycle
type WeeklyReport struct {
	Goal         goal.Goal
	Cycle        timeutil.Cycle
	Daily        []stats.DayTotal
	DailyWork    []stats.DayTotal
	Progress     goal.Progress
	TodayMinutes int
	TodayWork    int
	Summary      stats.Summary
	Degraded     bool
}

// StorageHealth describes the configured backend.
type StorageHealth struct {
	Backend string
	// Location is the database file or data directory.
	Location string
	// SchemaVersion is set for the sqlite backend.
	SchemaVersion int
	// Files is set for the jsonl backend.
	Files []jsonl.FileHealth
}

// Healthy reports whether no corrupted lines were found.
func (h StorageHealth) Healthy() bool {
	for _, f := range h.Files {
		if !f.Healthy() {
			return false
		}
	}
	return true
}
