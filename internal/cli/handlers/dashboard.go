package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
)

const progressBarWidth = 30

// ShowDashboard prints the goal, this week's progress, today's records and
// the clock and stopwatch status.
func ShowDashboard(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	snap := svc.State.Snapshot()
	p := snap.Progress()

	_, _ = fmt.Fprintln(deps.Stdout, snap.Goal.Title)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%s, starts %s\n", cli.FormatCycle(snap.Cycle), snap.Goal.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Progress:  %s\n", cli.FormatProgress(p))
	_, _ = fmt.Fprintf(deps.Stdout, "           %s\n", cli.ProgressBar(p.Fraction(), progressBarWidth))
	if p.Reached {
		_, _ = fmt.Fprintln(deps.Stdout, "Remaining: goal reached")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Remaining: %s\n", cli.FormatDuration(p.Remaining))
	}
	printDegraded(deps, snap)

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	today := 0
	for _, r := range snap.TodaysRecords {
		today += r.DurationMinutes
	}
	n := len(snap.TodaysRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Today: %s in %d %s\n", cli.FormatDuration(today), n, cli.Pluralize("record", n))
	for _, r := range snap.TodaysRecords {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatRecord(r))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printClockLine(deps, svc.Clock.Today())

	status, err := svc.Timer.Status()
	if err != nil {
		deps.Log().Warn("failed to read stopwatch state", "error", err)
		return
	}
	if status.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopwatch: running for %s\n", cli.FormatElapsedTime(status.ElapsedTime))
	}
}

func printClockLine(deps *cli.Deps, r *record.Record) {
	if r == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Clock: not clocked in today")
		return
	}
	switch r.Session() {
	case record.SessionClockedIn:
		_, _ = fmt.Fprintf(deps.Stdout, "Clock: clocked in at %s\n", r.ClockInDisplay())
	case record.SessionClockedOut:
		_, _ = fmt.Fprintf(deps.Stdout, "Clock: %s-%s (%s)\n", r.ClockInDisplay(), r.ClockOutDisplay(), r.WorkDurationDisplay())
	}
}

func printDegraded(deps *cli.Deps, snap service.Snapshot) {
	if !snap.Degraded {
		return
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Warning: records could not be read, totals may be incomplete")
	if snap.LastError != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", snap.LastError)
	}
}
