package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/service"
)

func TestAddWeekDeleteCommands(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "add", "1h30m", "reading", "papers")
	assertContains(t, env.stdout.String(), "Logged 1 hour 30 minutes: reading papers", "This week: 1h 30m / 40h (4%)")

	env.run(t, "add", "2h", "--date", "2025-12-09")
	assertContains(t, env.stdout.String(), "Date: Tue, Dec 9, 2025")

	env.run(t, "week")
	assertContains(t, env.stdout.String(), "Sat, Dec 13  (1h 30m)", "Tue, Dec 9  (2h)", "Total: 3h 30m")

	env.run(t, "delete", "2", "--yes")
	assertContains(t, env.stdout.String(), "Deleted:")
	if n := len(env.deps.Services.Record.Week()); n != 1 {
		t.Errorf("expected 1 record after delete, got %d", n)
	}

	// --yes must not leak into the next run
	env.deps.Stdin = strings.NewReader("n\n")
	env.run(t, "delete", "1")
	assertContains(t, env.stdout.String(), "Cancelled")
}

func TestWeekCommand_Filter(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "add", "1h", "code", "review")
	env.run(t, "add", "30m", "reading")

	env.run(t, "week", "--search", "REVIEW")
	out := env.stdout.String()
	assertContains(t, out, `Filter: "REVIEW"`, "review", "Matched: 1h (1 record)")
	if strings.Contains(out, "reading") {
		t.Errorf("expected reading to be filtered out, got:\n%s", out)
	}

	env.run(t, "week", "--kind", "stopwatch")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 for an unknown kind, got %d", env.exitCode)
	}
	assertContains(t, env.stderr.String(), "invalid record kind")
}

func TestAddCommand_InvalidDuration(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "add", "forever")

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	assertContains(t, env.stderr.String(), "Usage: focus add <duration> [notes]")
}

func TestLogCommand(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "log", "--from", "09:00", "--to", "10:45", "review")

	if env.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", env.exitCode, env.stderr.String())
	}
	assertContains(t, env.stdout.String(), "Logged 09:00-10:45 (1h 45m): review")
}

func TestEditCommand(t *testing.T) {
	env := setupCmdEnv(t)
	env.run(t, "add", "30m", "draft")

	env.run(t, "edit", "1", "--duration", "50m", "--notes", "final")
	assertContains(t, env.stdout.String(), "Updated: manual  50m  final")

	env.run(t, "edit", "1", "--notes", "")
	if env.exitCode != 0 {
		t.Fatalf("expected clearing notes to succeed, got %d: %s", env.exitCode, env.stderr.String())
	}
	if notes := env.deps.Services.Record.Week()[0].Notes; notes != "" {
		t.Errorf("expected notes to be cleared, got %q", notes)
	}

	env.run(t, "edit", "1")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 without flags, got %d", env.exitCode)
	}
}

func TestClockCommands(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "in", "--at", "09:00")
	assertContains(t, env.stdout.String(), "Clocked in at 09:00")

	env.run(t, "in")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 when already clocked in, got %d", env.exitCode)
	}

	env.run(t, "clock")
	assertContains(t, env.stdout.String(), "In:   09:00")

	env.run(t, "out", "--at", "12:30")
	assertContains(t, env.stdout.String(), "Clocked out at 12:30 (worked 3 hours 30 minutes)")

	env.run(t, "reset")
	assertContains(t, env.stdout.String(), "Clock session cleared for today")

	env.run(t, "punch")
	assertContains(t, env.stdout.String(), "Clocked in at 14:00")
}

func TestTimerCommands(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "start", "chapter", "three")
	assertContains(t, env.stdout.String(), "Stopwatch started: chapter three")

	env.run(t, "start", "again")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 while running, got %d", env.exitCode)
	}

	env.now = env.now.Add(25 * time.Minute)
	env.run(t, "status")
	assertContains(t, env.stdout.String(), "Elapsed: 25m")

	env.run(t, "stop")
	assertContains(t, env.stdout.String(), "Stopped: 14:00-14:25 (25m): chapter three")

	env.run(t, "start", "--force")
	env.run(t, "cancel")
	assertContains(t, env.stdout.String(), "Stopwatch discarded")
}

func TestStatsCommand(t *testing.T) {
	env := setupCmdEnv(t)
	env.run(t, "add", "1h")

	env.run(t, "stats")

	assertContains(t, env.stdout.String(), "Statistics for Week 50 (12/08 - 12/14):", "Total time:      1h")
}

func TestGoalCommands(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "goal")
	assertContains(t, env.stdout.String(), "Goal: Weekly Focus", "Weekly target: 40h")

	env.run(t, "goal", "set", "--target", "30h", "--start", "sunday")
	assertContains(t, env.stdout.String(), "Goal updated: 30h per week, starting Sunday")

	env.run(t, "goal", "rename", "Deep", "Work")
	assertContains(t, env.stdout.String(), `Goal renamed to "Deep Work"`)

	env.run(t, "goal", "reset")
	assertContains(t, env.stdout.String(), "Goal reset: 40h per week, starting Monday")

	env.run(t, "goal", "set")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 without flags, got %d", env.exitCode)
	}
}

func TestConfigCommands(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "config")
	assertContains(t, env.stdout.String(), "Status: Using defaults (no config file)")

	env.run(t, "config", "set", "theme", "nord")
	if env.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", env.exitCode, env.stderr.String())
	}
	cfg, err := config.Load(env.deps.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("expected theme nord, got %s", cfg.Theme)
	}

	env.run(t, "config", "--init")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 when the config file exists, got %d", env.exitCode)
	}
}

func TestRestoreCommand(t *testing.T) {
	env := setupCmdEnv(t)

	env.run(t, "restore", "two")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	assertContains(t, env.stderr.String(), "Invalid backup number 'two'")

	env.run(t, "restore")
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1 on sqlite, got %d", env.exitCode)
	}
	assertContains(t, env.stderr.String(), "Failed to restore backup 1")
}

func TestTUICommand_StorageUnavailable(t *testing.T) {
	env := setupCmdEnv(t)
	services := env.deps.Services
	defer func() { _ = services.Close() }()
	env.deps.Services = nil
	env.deps.ServicesErr = service.ErrStorageUnavailable

	env.run(t, "tui")

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	assertContains(t, env.stderr.String(), "Failed to open storage")
}
