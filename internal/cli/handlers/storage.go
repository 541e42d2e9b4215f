package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/storage/jsonl"
)

// ValidateStorage reports on the health of the configured backend
func ValidateStorage(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	h, err := svc.Storage.Health(context.Background())
	if err != nil {
		reportError(deps, "Failed to validate storage", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", h.Backend)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Location: %s\n", h.Location)
	if h.SchemaVersion > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Schema version: %d\n", h.SchemaVersion)
	}

	corrupted := 0
	for _, f := range h.Files {
		corrupted += f.CorruptedEntries
		printFileHealth(deps, f)
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if h.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Storage is healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Storage has %d corrupted %s\n", corrupted, cli.Pluralize("line", corrupted))
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Corrupted lines are skipped; 'focus restore' brings back the last backup")
}

func printFileHealth(deps *cli.Deps, f jsonl.FileHealth) {
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%s\n", f.Name)
	_, _ = fmt.Fprintf(deps.Stdout, "  Total lines:       %d\n", f.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "  Valid entries:     %d\n", f.ValidEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "  Corrupted entries: %d\n", f.CorruptedEntries)
	for _, w := range f.Warnings {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
	}
	if len(f.Backups) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "  Backups:           %d\n", len(f.Backups))
	}
}

// RestoreBackup restores backup n of the jsonl data files (1 is the most recent).
func RestoreBackup(deps *cli.Deps, n int) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	if err := svc.Storage.Restore(context.Background(), n); err != nil {
		reportError(deps, fmt.Sprintf("Failed to restore backup %d", n), err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", n)
	printWeekLine(deps, svc)
}
