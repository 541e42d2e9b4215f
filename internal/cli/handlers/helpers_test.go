package handlers

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/storage/sqlite"
)

// Saturday; the Monday cycle is Dec 8 - Dec 14.
var testNow = time.Date(2025, 12, 13, 14, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode, _ := setupTestDepsWithClock(t)
	return deps, stdout, stderr, exitCode
}

func setupTestDepsWithClock(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int, *testClock) {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath, time.UTC)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	clock := &testClock{now: testNow}
	deps, stdout, stderr, exitCode := setupTestDepsWithStore(t, store, clock)
	return deps, stdout, stderr, exitCode, clock
}

func setupTestDepsWithStore(t *testing.T, store storage.Store, clock *testClock) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	configPath := filepath.Join(tmpDir, "config.toml")

	services := service.NewServicesWithStore(store, service.Options{
		Config:        cfg,
		ConfigPath:    configPath,
		TimerPath:     filepath.Join(tmpDir, "timer.json"),
		StoreLocation: tmpDir,
		Location:      time.UTC,
		Now:           clock.Now,
	})
	t.Cleanup(func() { _ = services.Close() })
	if _, err := services.Goal.Load(context.Background()); err != nil {
		t.Fatalf("failed to load goal: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:     stdout,
		Stderr:     stderr,
		Stdin:      strings.NewReader(""),
		Exit:       func(code int) { exitCode = code },
		Services:   services,
		Config:     cfg,
		ConfigPath: configPath,
		Location:   time.UTC,
		Now:        clock.Now,
	}

	return deps, stdout, stderr, &exitCode
}

// setupBrokenDeps creates deps whose store could not be opened
func setupBrokenDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	deps.Services = nil
	deps.ServicesErr = service.ErrStorageUnavailable
	return deps, stdout, stderr, exitCode
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 12, day, hour, minute, 0, 0, time.UTC)
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func resetOutput(stdout, stderr *bytes.Buffer, exitCode *int) {
	stdout.Reset()
	stderr.Reset()
	*exitCode = 0
}
