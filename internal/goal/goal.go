package goal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults for a goal created on first use.
const (
	DefaultTitle         = "Weekly Focus"
	DefaultTargetMinutes = 2400
	DefaultWeekStart     = Monday
)

// ErrInvalidTarget is returned when the weekly target is not a positive number of minutes.
var ErrInvalidTarget = errors.New("weekly target must be a positive number of minutes")

// ErrInvalidWeekDay is returned for a week start outside Sunday..Saturday.
var ErrInvalidWeekDay = errors.New("week start day must be sunday through saturday")

// WeekDay is a day of the week, 0 = Sunday .. 6 = Saturday.
type WeekDay int

const (
	Sunday WeekDay = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekDayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// AllWeekDays lists the days in order starting from Sunday.
func AllWeekDays() []WeekDay {
	return []WeekDay{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// Valid reports whether d is one of the seven days.
func (d WeekDay) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d WeekDay) String() string {
	if !d.Valid() {
		return fmt.Sprintf("WeekDay(%d)", int(d))
	}
	return weekDayNames[d]
}

// ShortName returns the three letter abbreviation, e.g. "Mon".
func (d WeekDay) ShortName() string {
	return d.String()[:3]
}

// Weekday converts to the standard library representation.
func (d WeekDay) Weekday() time.Weekday {
	return time.Weekday(d)
}

// ParseWeekDay accepts full or three letter names in any case.
func ParseWeekDay(s string) (WeekDay, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekDayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return WeekDay(i), nil
		}
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidWeekDay, s)
}

// Goal is the weekly focus-time target.
type Goal struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	WeeklyTargetMinutes int       `json:"weekly_target_minutes"`
	WeekStartDay        WeekDay   `json:"week_start_day"`
	CreatedAt           time.Time `json:"created_at"`
	IsActive            bool      `json:"is_active"`
}

// New creates an active goal with a fresh id.
func New(title string, targetMinutes int, weekStart WeekDay, now time.Time) Goal {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	return Goal{
		ID:                  uuid.NewString(),
		Title:               title,
		WeeklyTargetMinutes: targetMinutes,
		WeekStartDay:        weekStart,
		CreatedAt:           now,
		IsActive:            true,
	}
}

// Default creates the goal used when none exists: 40 hours, starting Monday.
func Default(now time.Time) Goal {
	return New(DefaultTitle, DefaultTargetMinutes, DefaultWeekStart, now)
}

// Validate checks the target and week start.
func (g Goal) Validate() error {
	if g.WeeklyTargetMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTarget, g.WeeklyTargetMinutes)
	}
	if !g.WeekStartDay.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidWeekDay, int(g.WeekStartDay))
	}
	return nil
}

// Progress describes how far a week's minutes are toward the target.
type Progress struct {
	Minutes   int
	Target    int
	Percent   float64
	Remaining int
	Reached   bool
}

// Progress computes progress for the given number of minutes.
// Percent is not capped; Remaining never goes below zero.
func (g Goal) Progress(minutes int) Progress {
	p := Progress{Minutes: minutes, Target: g.WeeklyTargetMinutes}
	if g.WeeklyTargetMinutes > 0 {
		p.Percent = float64(minutes) / float64(g.WeeklyTargetMinutes) * 100
	}
	p.Remaining = max(g.WeeklyTargetMinutes-minutes, 0)
	p.Reached = minutes >= g.WeeklyTargetMinutes
	return p
}

// Fraction returns progress as a value in [0, 1], for progress bars.
func (p Progress) Fraction() float64 {
	return min(max(p.Percent/100, 0), 1)
}
