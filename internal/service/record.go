package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/stats"
)

// RecordService creates, edits and deletes records of the active goal
type RecordService struct {
	e *engine
}

// EditInput holds the fields to change on an existing record. Nil fields
// are left as they are.
type EditInput struct {
	Minutes *int
	Notes   *string
}

// AddManual credits minutes to the active goal, dated now.
func (s *RecordService) AddManual(ctx context.Context, minutes int, notes string) (record.Record, error) {
	return s.AddManualAt(ctx, time.Time{}, minutes, notes)
}

// AddManualAt credits minutes to the active goal on date. A zero date means now.
func (s *RecordService) AddManualAt(ctx context.Context, date time.Time, minutes int, notes string) (record.Record, error) {
	if minutes <= 0 {
		return record.Record{}, fmt.Errorf("%w: duration must be positive, got %d minutes", ErrInvalidInput, minutes)
	}

	var created record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		now := s.e.now()
		if date.IsZero() {
			date = now
		}
		r := record.NewManual(g.ID, date.In(s.e.loc), minutes, notes, now)
		if err := s.e.store.InsertRecord(ctx, r); err != nil {
			return g, fmt.Errorf("failed to save record: %w", err)
		}
		created = r
		return g, nil
	})
	return created, err
}

// AddTimed records the span start..end against the active goal. The span
// must cover at least one whole minute.
func (s *RecordService) AddTimed(ctx context.Context, start, end time.Time, notes string) (record.Record, error) {
	if !end.After(start) {
		return record.Record{}, fmt.Errorf("%w: end time %s is not after start time %s",
			ErrInvalidInput, end.Format("15:04"), start.Format("15:04"))
	}
	if record.FloorMinutes(end.Sub(start)) == 0 {
		return record.Record{}, fmt.Errorf("%w: span must be at least one minute", ErrInvalidInput)
	}

	var created record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r := record.NewTimed(g.ID, start.In(s.e.loc), end.In(s.e.loc), notes, s.e.now())
		if err := s.e.store.InsertRecord(ctx, r); err != nil {
			return g, fmt.Errorf("failed to save record: %w", err)
		}
		created = r
		return g, nil
	})
	return created, err
}

// Edit changes the duration and/or notes of a record.
func (s *RecordService) Edit(ctx context.Context, id string, in EditInput) (record.Record, error) {
	if in.Minutes == nil && in.Notes == nil {
		return record.Record{}, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	if in.Minutes != nil && *in.Minutes <= 0 {
		return record.Record{}, fmt.Errorf("%w: duration must be positive, got %d minutes", ErrInvalidInput, *in.Minutes)
	}

	var updated record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.e.store.GetRecord(ctx, id)
		if err != nil {
			return g, fmt.Errorf("failed to load record: %w", err)
		}
		if in.Minutes != nil {
			r.DurationMinutes = *in.Minutes
		}
		if in.Notes != nil {
			r.Notes = strings.TrimSpace(*in.Notes)
		}
		if err := s.e.store.UpdateRecord(ctx, r); err != nil {
			return g, fmt.Errorf("failed to save record: %w", err)
		}
		updated = r
		return g, nil
	})
	return updated, err
}

// Delete removes a record unconditionally.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	return s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		if err := s.e.store.DeleteRecord(ctx, id); err != nil {
			return g, fmt.Errorf("failed to delete record: %w", err)
		}
		return g, nil
	})
}

// Get reads a record straight from the store.
func (s *RecordService) Get(ctx context.Context, id string) (record.Record, error) {
	r, err := s.e.store.GetRecord(ctx, id)
	if err != nil {
		return record.Record{}, fmt.Errorf("failed to load record: %w", err)
	}
	return r, nil
}

// Today returns today's records for the active goal, newest first.
func (s *RecordService) Today() []record.Record {
	return s.e.state.Snapshot().TodaysRecords
}

// Week returns the current cycle's records for the active goal, oldest first.
func (s *RecordService) Week() []record.Record {
	return s.e.state.Snapshot().CurrentWeekRecords
}

// WeekByDay groups the current cycle's records by day, newest day first.
func (s *RecordService) WeekByDay() []stats.DayGroup {
	return stats.GroupByDay(s.Week())
}
