package timeutil

import (
	"fmt"
	"time"
)

// DaysPerCycle is the number of calendar days in a weekly cycle.
const DaysPerCycle = 7

// Cycle is the concrete 7-day window derived from a week start day.
// Start and End are both midnights; End is the start of the last day.
type Cycle struct {
	Start time.Time
	End   time.Time
}

// CycleContaining returns the cycle that starts on the most recent weekStart
// on or before t's calendar day, in t's location.
func CycleContaining(t time.Time, weekStart time.Weekday) Cycle {
	day := StartOfDay(t)

	offset := int(day.Weekday()) - int(weekStart)
	if offset < 0 {
		offset += DaysPerCycle
	}

	start := AddDays(day, -offset)
	return Cycle{
		Start: start,
		End:   AddDays(start, DaysPerCycle-1),
	}
}

// CurrentCycle returns the cycle containing now().
func CurrentCycle(now func() time.Time, weekStart time.Weekday) Cycle {
	return CycleContaining(now(), weekStart)
}

// Upper returns the exclusive upper bound of the cycle: midnight after End.
func (c Cycle) Upper() time.Time {
	return NextDay(c.End)
}

// Contains reports whether t falls on one of the cycle's days.
// End is inclusive at day granularity, so the check is against Upper.
func (c Cycle) Contains(t time.Time) bool {
	return IsInHalfOpenRange(t, c.Start, c.Upper())
}

// Days returns the start of each day in the cycle, in order.
func (c Cycle) Days() []time.Time {
	days := make([]time.Time, DaysPerCycle)
	for i := range days {
		days[i] = AddDays(c.Start, i)
	}
	return days
}

// Previous returns the cycle immediately before c.
func (c Cycle) Previous() Cycle {
	return Cycle{Start: AddDays(c.Start, -DaysPerCycle), End: AddDays(c.End, -DaysPerCycle)}
}

// Next returns the cycle immediately after c.
func (c Cycle) Next() Cycle {
	return Cycle{Start: AddDays(c.Start, DaysPerCycle), End: AddDays(c.End, DaysPerCycle)}
}

// WeekNumber returns the ISO week number of the cycle start.
func (c Cycle) WeekNumber() int {
	_, week := c.Start.ISOWeek()
	return week
}

// Year returns the ISO year of the cycle start.
func (c Cycle) Year() int {
	year, _ := c.Start.ISOWeek()
	return year
}

// DisplayName formats the cycle as "MM/DD - MM/DD".
func (c Cycle) DisplayName() string {
	return fmt.Sprintf("%s - %s", c.Start.Format("01/02"), c.End.Format("01/02"))
}

// Equal reports whether both bounds are the same instants.
func (c Cycle) Equal(o Cycle) bool {
	return c.Start.Equal(o.Start) && c.End.Equal(o.End)
}
