// Package record defines a single logged contribution of focus time.
package record

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the clock-in/clock-out state of a record. It is derived from
// the clock fields and never stored.
type Session int

const (
	SessionNone Session = iota
	SessionClockedIn
	SessionClockedOut
)

func (s Session) String() string {
	switch s {
	case SessionClockedIn:
		return "clocked in"
	case SessionClockedOut:
		return "clocked out"
	default:
		return "not clocked"
	}
}

// NotClocked is shown in place of a missing clock time.
const NotClocked = "not clocked"

// Record is one logged contribution of time toward a goal.
type Record struct {
	ID                  string     `json:"id"`
	GoalID              string     `json:"goal_id"`
	Date                time.Time  `json:"date"`
	DurationMinutes     int        `json:"duration_minutes"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	ClockInTime         *time.Time `json:"clock_in_time,omitempty"`
	ClockOutTime        *time.Time `json:"clock_out_time,omitempty"`
	WorkDurationMinutes int        `json:"work_duration_minutes"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	// ClockSession marks the record that carries its day's clock session.
	// It survives a reset so the day's next clock-in reuses the record.
	ClockSession bool `json:"clock_session,omitempty"`
}

// NewManual creates a record crediting minutes to goalID on date.
func NewManual(goalID string, date time.Time, minutes int, notes string, now time.Time) Record {
	return Record{
		ID:              uuid.NewString(),
		GoalID:          goalID,
		Date:            date,
		DurationMinutes: minutes,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       now,
	}
}

// NewTimed creates a record spanning start..end. The record is dated at start
// and credited with the whole minutes between the two.
func NewTimed(goalID string, start, end time.Time, notes string, now time.Time) Record {
	r := NewManual(goalID, start, FloorMinutes(end.Sub(start)), notes, now)
	r.StartTime = &start
	r.EndTime = &end
	return r
}

// NewClockSession creates a clock-bearing record dated at day with clock-in at t.
func NewClockSession(goalID string, day, t time.Time, now time.Time) Record {
	r := NewManual(goalID, day, 0, "", now)
	r.ClockInTime = &t
	r.ClockSession = true
	r.RecalculateWorkDuration()
	return r
}

// IsManualEntry reports whether neither start nor end time is set.
func (r Record) IsManualEntry() bool {
	return r.StartTime == nil && r.EndTime == nil
}

// IsClockEntry reports whether either clock time is set.
func (r Record) IsClockEntry() bool {
	return r.ClockInTime != nil || r.ClockOutTime != nil
}

func (r Record) HasClockedIn() bool {
	return r.ClockInTime != nil
}

func (r Record) HasClockedOut() bool {
	return r.ClockOutTime != nil
}

// HoldsClockSession reports whether the record is its day's clock session,
// including one whose clock times were reset.
func (r Record) HoldsClockSession() bool {
	return r.ClockSession || r.IsClockEntry()
}

// Session returns the clock state of the record.
func (r Record) Session() Session {
	switch {
	case r.ClockInTime != nil && r.ClockOutTime != nil:
		return SessionClockedOut
	case r.ClockInTime != nil:
		return SessionClockedIn
	default:
		return SessionNone
	}
}

// RecalculateWorkDuration sets WorkDurationMinutes from the clock pair:
// whole minutes between clock-in and clock-out, or 0 when either is missing
// or clock-out is not after clock-in.
func (r *Record) RecalculateWorkDuration() {
	if r.ClockInTime == nil || r.ClockOutTime == nil {
		r.WorkDurationMinutes = 0
		return
	}
	r.WorkDurationMinutes = FloorMinutes(r.ClockOutTime.Sub(*r.ClockInTime))
}

// SetClockIn sets the clock-in time and recomputes the work duration.
func (r *Record) SetClockIn(t time.Time) {
	r.ClockInTime = &t
	r.ClockSession = true
	r.RecalculateWorkDuration()
}

// SetClockOut sets the clock-out time and recomputes the work duration.
func (r *Record) SetClockOut(t time.Time) {
	r.ClockOutTime = &t
	r.RecalculateWorkDuration()
}

// ClearClock removes both clock times. DurationMinutes is left as is.
func (r *Record) ClearClock() {
	r.ClockInTime = nil
	r.ClockOutTime = nil
	r.RecalculateWorkDuration()
}

// CreditWorkDuration copies a positive work duration into DurationMinutes.
func (r *Record) CreditWorkDuration() {
	if r.WorkDurationMinutes > 0 {
		r.DurationMinutes = r.WorkDurationMinutes
	}
}

// DisplayTime renders DurationMinutes, e.g. "1 hour 15 minutes".
func (r Record) DisplayTime() string {
	return Describe(r.DurationMinutes)
}

// WorkDurationDisplay renders WorkDurationMinutes, e.g. "8 hours 30 minutes".
func (r Record) WorkDurationDisplay() string {
	return Describe(r.WorkDurationMinutes)
}

// ClockInDisplay returns the clock-in time as "15:04", or NotClocked.
func (r Record) ClockInDisplay() string {
	return clockDisplay(r.ClockInTime)
}

// ClockOutDisplay returns the clock-out time as "15:04", or NotClocked.
func (r Record) ClockOutDisplay() string {
	return clockDisplay(r.ClockOutTime)
}

func clockDisplay(t *time.Time) string {
	if t == nil {
		return NotClocked
	}
	return t.Format("15:04")
}

// In returns a copy with every timestamp converted to loc.
func (r Record) In(loc *time.Location) Record {
	r.Date = r.Date.In(loc)
	r.CreatedAt = r.CreatedAt.In(loc)
	r.StartTime = inLoc(r.StartTime, loc)
	r.EndTime = inLoc(r.EndTime, loc)
	r.ClockInTime = inLoc(r.ClockInTime, loc)
	r.ClockOutTime = inLoc(r.ClockOutTime, loc)
	return r
}

func inLoc(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}
