package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/service"
)

// StartTimer starts the stopwatch
func StartTimer(deps *cli.Deps, notes string, force bool) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	state, existing, err := svc.Timer.Start(context.Background(), notes, force)
	if err != nil {
		if errors.Is(err, service.ErrTimerAlreadyRunning) && existing != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Warning: The stopwatch is already running")
			if existing.Notes != "" {
				_, _ = fmt.Fprintf(deps.Stderr, "Notes: %s\n", existing.Notes)
			}
			_, _ = fmt.Fprintf(deps.Stderr, "Started: %s\n", cli.FormatTimerStartTime(existing.StartedAt, deps.LocalNow()))
			_, _ = fmt.Fprintln(deps.Stderr)
			_, _ = fmt.Fprintln(deps.Stderr, "Options:")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Stop it and record the time with 'focus stop'")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Restart it with 'focus start [notes] --force'")
			deps.Exit(1)
			return
		}
		reportError(deps, "Failed to start the stopwatch", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stopwatch started%s\n", notesSuffix(state.Notes))
	if force && existing != nil {
		_, _ = fmt.Fprintln(deps.Stdout, "(Previous stopwatch was discarded)")
	}
}

// StopTimer stops the stopwatch and records the elapsed time
func StopTimer(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, state, err := svc.Timer.Stop(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) && state != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: The stopwatch has run for less than a minute")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Keep it running, or discard it with 'focus cancel'")
			deps.Exit(1)
			return
		}
		reportError(deps, "Failed to stop the stopwatch", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s-%s (%s)%s\n",
		r.StartTime.Format("15:04"), r.EndTime.Format("15:04"), cli.FormatDuration(r.DurationMinutes), notesSuffix(state.Notes))
	printWeekLine(deps, svc)
}

// CancelTimer discards the stopwatch without recording anything
func CancelTimer(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	state, err := svc.Timer.Cancel()
	if err != nil {
		reportError(deps, "Failed to cancel the stopwatch", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopwatch discarded after %s\n", cli.FormatElapsedTime(state.Elapsed(deps.LocalNow())))
}

// ShowTimerStatus shows the current stopwatch status
func ShowTimerStatus(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	status, err := svc.Timer.Status()
	if err != nil {
		reportError(deps, "Failed to read the stopwatch", err)
		return
	}

	if !status.Running || status.State == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "No stopwatch running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start one with: focus start [notes]")
		return
	}

	state := status.State
	_, _ = fmt.Fprintln(deps.Stdout, "Stopwatch running:")
	if state.Notes != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", state.Notes)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatTimerStartTime(state.StartedAt, deps.LocalNow()))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", cli.FormatElapsedTime(status.ElapsedTime))
}
