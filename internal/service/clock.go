package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/timeutil"
)

// Clock session errors
var (
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrNotClockedIn      = errors.New("not clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrNoClockSession    = errors.New("no clock session")
)

// ClockService drives the clock-in/clock-out session of a day. A goal has
// at most one clock-bearing record per calendar day.
type ClockService struct {
	e *engine
}

// Today returns today's clock session record, or nil when there is none.
func (s *ClockService) Today() *record.Record {
	snap := s.e.state.Snapshot()
	r, ok := stats.ClockRecord(snap.TodaysRecords, snap.Goal.ID)
	if !ok {
		return nil
	}
	return &r
}

// CreateAndClockIn clocks in at t. A day whose session was reset is clocked
// into again; otherwise a new session dated to t's day is created. It fails
// when the day's session is clocked in or out.
func (s *ClockService) CreateAndClockIn(ctx context.Context, t time.Time) (record.Record, error) {
	var created record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.createLocked(ctx, g, t)
		created = r
		return g, err
	})
	return created, err
}

// ClockIn sets the clock-in time on an existing record that has none.
func (s *ClockService) ClockIn(ctx context.Context, recordID string, t time.Time) (record.Record, error) {
	return s.update(ctx, recordID, func(r *record.Record) error {
		return s.clockIn(r, t)
	})
}

// ClockOut sets the clock-out time on a clocked-in record. The work
// duration is recomputed and credited to the record.
func (s *ClockService) ClockOut(ctx context.Context, recordID string, t time.Time) (record.Record, error) {
	return s.update(ctx, recordID, func(r *record.Record) error {
		return s.clockOut(r, t)
	})
}

// Reset clears both clock times. The record and its credited duration stay.
func (s *ClockService) Reset(ctx context.Context, recordID string) (record.Record, error) {
	return s.update(ctx, recordID, resetClock)
}

// ClockOutAt clocks out of the open session for t's day. A session still
// open from the previous day is closed instead when t's day has none.
func (s *ClockService) ClockOutAt(ctx context.Context, t time.Time) (record.Record, error) {
	var updated record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.sessionFor(ctx, g, t)
		if err != nil {
			return g, err
		}
		if r == nil {
			r, err = s.sessionFor(ctx, g, timeutil.AddDays(t, -1))
			if err != nil {
				return g, err
			}
			if r == nil || r.Session() != record.SessionClockedIn {
				return g, ErrNotClockedIn
			}
		}
		if err := s.clockOut(r, t); err != nil {
			return g, err
		}
		updated, err = s.save(ctx, *r)
		return g, err
	})
	return updated, err
}

// ResetDay clears the clock times of the session on day.
func (s *ClockService) ResetDay(ctx context.Context, day time.Time) (record.Record, error) {
	var updated record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.sessionFor(ctx, g, day)
		if err != nil {
			return g, err
		}
		if r == nil {
			return g, ErrNoClockSession
		}
		if err := resetClock(r); err != nil {
			return g, err
		}
		updated, err = s.save(ctx, *r)
		return g, err
	})
	return updated, err
}

// Punch advances the session for t's day: it clocks in when there is no
// session or it was reset, and clocks out when clocked in.
func (s *ClockService) Punch(ctx context.Context, t time.Time) (record.Record, error) {
	var result record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.sessionFor(ctx, g, t)
		if err != nil {
			return g, err
		}
		if r == nil || r.Session() == record.SessionNone {
			result, err = s.createLocked(ctx, g, t)
			return g, err
		}
		if err := s.clockOut(r, t); err != nil {
			return g, err
		}
		result, err = s.save(ctx, *r)
		return g, err
	})
	return result, err
}

func (s *ClockService) createLocked(ctx context.Context, g goal.Goal, t time.Time) (record.Record, error) {
	existing, err := s.sessionFor(ctx, g, t)
	if err != nil {
		return record.Record{}, err
	}
	if existing != nil {
		if existing.Session() != record.SessionNone {
			return record.Record{}, sessionError(existing.Session())
		}
		if err := s.clockIn(existing, t); err != nil {
			return record.Record{}, err
		}
		return s.save(ctx, *existing)
	}

	t = t.In(s.e.loc)
	r := record.NewClockSession(g.ID, timeutil.StartOfDay(t), t, s.e.now())
	if err := s.e.store.InsertRecord(ctx, r); err != nil {
		return record.Record{}, fmt.Errorf("failed to save clock session: %w", err)
	}
	s.e.logger.Debug("clocked in", "record", r.ID, "at", t)
	return r, nil
}

func (s *ClockService) clockIn(r *record.Record, t time.Time) error {
	switch {
	case r.HasClockedIn():
		return ErrAlreadyClockedIn
	case r.HasClockedOut():
		return ErrAlreadyClockedOut
	}
	r.SetClockIn(t.In(s.e.loc))
	s.e.logger.Debug("clocked in", "record", r.ID, "at", t)
	return nil
}

func (s *ClockService) clockOut(r *record.Record, t time.Time) error {
	switch r.Session() {
	case record.SessionNone:
		return ErrNotClockedIn
	case record.SessionClockedOut:
		return ErrAlreadyClockedOut
	}
	if t.Before(*r.ClockInTime) {
		return fmt.Errorf("%w: clock-out %s is before clock-in %s",
			ErrInvalidInput, t.In(s.e.loc).Format("15:04"), r.ClockInDisplay())
	}
	r.SetClockOut(t.In(s.e.loc))
	return nil
}

func resetClock(r *record.Record) error {
	if !r.IsClockEntry() {
		return ErrNoClockSession
	}
	r.ClearClock()
	return nil
}

// update applies change to a stored record under the writer lock.
func (s *ClockService) update(ctx context.Context, recordID string, change func(r *record.Record) error) (record.Record, error) {
	var updated record.Record
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		r, err := s.e.store.GetRecord(ctx, recordID)
		if err != nil {
			return g, fmt.Errorf("failed to load record: %w", err)
		}
		if err := change(&r); err != nil {
			return g, err
		}
		updated, err = s.save(ctx, r)
		return g, err
	})
	return updated, err
}

// save credits a positive work duration to the record and persists it.
func (s *ClockService) save(ctx context.Context, r record.Record) (record.Record, error) {
	r.CreditWorkDuration()
	if err := s.e.store.UpdateRecord(ctx, r); err != nil {
		return record.Record{}, fmt.Errorf("failed to save clock session: %w", err)
	}
	s.e.logger.Debug("clock session updated", "record", r.ID, "session", r.Session(), "work_minutes", r.WorkDurationMinutes)
	return r, nil
}

// sessionFor returns the goal's clock session on t's day, or nil.
func (s *ClockService) sessionFor(ctx context.Context, g goal.Goal, t time.Time) (*record.Record, error) {
	f := storage.ForDay(g.ID, t.In(s.e.loc))
	f.ClockOnly = true
	records, err := s.e.store.Records(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock session: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func sessionError(session record.Session) error {
	if session == record.SessionClockedOut {
		return ErrAlreadyClockedOut
	}
	return ErrAlreadyClockedIn
}
