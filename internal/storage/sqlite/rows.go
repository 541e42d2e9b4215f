package sqlite

import (
	"fmt"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage"
)

// timeLayout is fixed width in UTC so that text comparison orders instants.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type goalRow struct {
	ID                  string `db:"id"`
	Title               string `db:"title"`
	WeeklyTargetMinutes int    `db:"weekly_target_minutes"`
	WeekStartDay        int    `db:"week_start_day"`
	CreatedAt           string `db:"created_at"`
	IsActive            bool   `db:"is_active"`
}

type recordRow struct {
	ID                  string  `db:"id"`
	GoalID              string  `db:"goal_id"`
	Date                string  `db:"date"`
	Day                 string  `db:"day"`
	DurationMinutes     int     `db:"duration_minutes"`
	StartTime           *string `db:"start_time"`
	EndTime             *string `db:"end_time"`
	ClockInTime         *string `db:"clock_in_time"`
	ClockOutTime        *string `db:"clock_out_time"`
	WorkDurationMinutes int     `db:"work_duration_minutes"`
	Notes               string  `db:"notes"`
	CreatedAt           string  `db:"created_at"`
	ClockSession        bool    `db:"clock_session"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.In(loc), nil
}

func parseTimePtr(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toGoalRow(g goal.Goal) goalRow {
	return goalRow{
		ID:                  g.ID,
		Title:               g.Title,
		WeeklyTargetMinutes: g.WeeklyTargetMinutes,
		WeekStartDay:        int(g.WeekStartDay),
		CreatedAt:           formatTime(g.CreatedAt),
		IsActive:            g.IsActive,
	}
}

func (row goalRow) toGoal(loc *time.Location) (goal.Goal, error) {
	createdAt, err := parseTime(row.CreatedAt, loc)
	if err != nil {
		return goal.Goal{}, err
	}
	return goal.Goal{
		ID:                  row.ID,
		Title:               row.Title,
		WeeklyTargetMinutes: row.WeeklyTargetMinutes,
		WeekStartDay:        goal.WeekDay(row.WeekStartDay),
		CreatedAt:           createdAt,
		IsActive:            row.IsActive,
	}, nil
}

func toRecordRow(r record.Record) recordRow {
	return recordRow{
		ID:                  r.ID,
		GoalID:              r.GoalID,
		Date:                formatTime(r.Date),
		Day:                 storage.DayKey(r),
		DurationMinutes:     r.DurationMinutes,
		StartTime:           formatTimePtr(r.StartTime),
		EndTime:             formatTimePtr(r.EndTime),
		ClockInTime:         formatTimePtr(r.ClockInTime),
		ClockOutTime:        formatTimePtr(r.ClockOutTime),
		WorkDurationMinutes: r.WorkDurationMinutes,
		Notes:               r.Notes,
		CreatedAt:           formatTime(r.CreatedAt),
		ClockSession:        r.ClockSession,
	}
}

func (row recordRow) toRecord(loc *time.Location) (record.Record, error) {
	r := record.Record{
		ID:                  row.ID,
		GoalID:              row.GoalID,
		DurationMinutes:     row.DurationMinutes,
		WorkDurationMinutes: row.WorkDurationMinutes,
		Notes:               row.Notes,
		ClockSession:        row.ClockSession,
	}

	var err error
	if r.Date, err = parseTime(row.Date, loc); err != nil {
		return record.Record{}, err
	}
	if r.CreatedAt, err = parseTime(row.CreatedAt, loc); err != nil {
		return record.Record{}, err
	}
	if r.StartTime, err = parseTimePtr(row.StartTime, loc); err != nil {
		return record.Record{}, err
	}
	if r.EndTime, err = parseTimePtr(row.EndTime, loc); err != nil {
		return record.Record{}, err
	}
	if r.ClockInTime, err = parseTimePtr(row.ClockInTime, loc); err != nil {
		return record.Record{}, err
	}
	if r.ClockOutTime, err = parseTimePtr(row.ClockOutTime, loc); err != nil {
		return record.Record{}, err
	}
	return r, nil
}
