// Package handlers implements the CLI commands on top of the service layer.
// Every handler writes to Deps.Stdout, reports failures on Deps.Stderr and
// exits with status 1 through Deps.Exit.
package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/storage"
)

// hints maps sentinel errors to the next step suggested to the user.
var hints = []struct {
	err  error
	hint string
}{
	{service.ErrStorageUnavailable, "Check the storage and data_dir settings with 'focus config'"},
	{service.ErrAlreadyClockedIn, "Clock out with 'focus out'"},
	{service.ErrNotClockedIn, "Clock in with 'focus in'"},
	{service.ErrAlreadyClockedOut, "Clear today's session with 'focus reset' to start over"},
	{service.ErrNoClockSession, "Start a session with 'focus in'"},
	{service.ErrNoTimerRunning, "Start the stopwatch with 'focus start [notes]'"},
	{service.ErrBackendUnsupported, "Backups are kept by the jsonl backend: 'focus config set storage jsonl'"},
	{storage.ErrConflict, "Only one clock session per day is allowed"},
	{storage.ErrNotFound, "List this week's records with 'focus week'"},
}

// servicesOrExit returns the services, or reports why they are unavailable.
func servicesOrExit(deps *cli.Deps) (*service.Services, bool) {
	if deps.Services != nil {
		return deps.Services, true
	}
	err := deps.ServicesErr
	if err == nil {
		err = service.ErrStorageUnavailable
	}
	reportError(deps, "Failed to open storage", err)
	return nil, false
}

// reportError prints msg with err as details, a hint when one is known, and exits 1.
func reportError(deps *cli.Deps, msg string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// usageError prints a validation message with an example and exits 1.
func usageError(deps *cli.Deps, msg, usage string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if usage != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Usage: %s\n", usage)
	}
	deps.Exit(1)
}

func hintFor(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range hints {
		if errors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}
