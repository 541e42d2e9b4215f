package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/timeutil"
)

// ClockIn starts today's clock session at the given time ("" or "now" for now).
func ClockIn(deps *cli.Deps, at string) {
	t, ok := parseAt(deps, at, "focus in [--at 09:00]")
	if !ok {
		return
	}
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Clock.CreateAndClockIn(context.Background(), t)
	if err != nil {
		reportError(deps, "Failed to clock in", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked in at %s\n", r.ClockInDisplay())
}

// ClockOut ends the open clock session. A session left open overnight is
// closed on the day it was started.
func ClockOut(deps *cli.Deps, at string) {
	t, ok := parseAt(deps, at, "focus out [--at 17:30]")
	if !ok {
		return
	}
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Clock.ClockOutAt(context.Background(), t)
	if err != nil {
		reportError(deps, "Failed to clock out", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked out at %s (worked %s)\n", r.ClockOutDisplay(), r.WorkDurationDisplay())
	printWeekLine(deps, svc)
}

// Punch clocks in when no session is open today and out otherwise.
func Punch(deps *cli.Deps, at string) {
	t, ok := parseAt(deps, at, "focus punch [--at 09:00]")
	if !ok {
		return
	}
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Clock.Punch(context.Background(), t)
	if err != nil {
		reportError(deps, "Failed to punch the clock", err)
		return
	}
	if r.Session() == record.SessionClockedIn {
		_, _ = fmt.Fprintf(deps.Stdout, "Clocked in at %s\n", r.ClockInDisplay())
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked out at %s (worked %s)\n", r.ClockOutDisplay(), r.WorkDurationDisplay())
}

// ResetClock clears today's clock times. Minutes already credited to the
// record are kept.
func ResetClock(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Clock.ResetDay(context.Background(), deps.LocalNow())
	if err != nil {
		reportError(deps, "Failed to reset the clock", err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Clock session cleared for today")
	if r.DurationMinutes > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "The record keeps %s\n", r.DisplayTime())
	}
}

// ShowClock prints today's clock session.
func ShowClock(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r := svc.Clock.Today()
	if r == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Not clocked in today")
		_, _ = fmt.Fprintln(deps.Stdout, "Clock in with: focus in")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clock: %s\n", r.Session())
	_, _ = fmt.Fprintf(deps.Stdout, "  In:   %s\n", r.ClockInDisplay())
	_, _ = fmt.Fprintf(deps.Stdout, "  Out:  %s\n", r.ClockOutDisplay())
	if r.Session() == record.SessionClockedIn {
		elapsed := deps.LocalNow().Sub(*r.ClockInTime)
		_, _ = fmt.Fprintf(deps.Stdout, "  So far: %s\n", cli.FormatElapsedTime(elapsed))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Work: %s\n", r.WorkDurationDisplay())
}

func parseAt(deps *cli.Deps, at, usage string) (time.Time, bool) {
	t, err := timeutil.ParseClockTime(at, deps.LocalNow())
	if err != nil {
		usageError(deps, err.Error(), usage)
		return time.Time{}, false
	}
	return t, true
}
