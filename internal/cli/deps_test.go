package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/osutil"
	"github.com/xolan/focus/internal/service"
)

type tempDirProvider struct {
	dir string
	err error
}

func (p tempDirProvider) UserConfigDir() (string, error) {
	return p.dir, p.err
}

func (p tempDirProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(tempDirProvider{dir: dir})
	t.Cleanup(osutil.ResetProvider)
	return dir
}

func TestDefaultDeps(t *testing.T) {
	dir := useTempConfigDir(t)

	deps := DefaultDeps()
	t.Cleanup(func() {
		if deps.Services != nil {
			_ = deps.Services.Close()
		}
	})

	if deps.ServicesErr != nil {
		t.Fatalf("unexpected services error: %v", deps.ServicesErr)
	}
	if deps.Services == nil {
		t.Fatal("expected services to be created")
	}
	if deps.ConfigPath != filepath.Join(dir, "focus", "config.toml") {
		t.Errorf("unexpected config path %s", deps.ConfigPath)
	}
	if deps.Stdout == nil || deps.Stderr == nil || deps.Stdin == nil || deps.Exit == nil {
		t.Error("expected standard streams and exit to be set")
	}
	if _, err := os.Stat(filepath.Join(dir, "focus", "focus.db")); err != nil {
		t.Errorf("expected the database to be created: %v", err)
	}
	if deps.Services.Goal.Current().ID == "" {
		t.Error("expected the default goal to be loaded")
	}
}

func TestDefaultDeps_InvalidConfigFallsBack(t *testing.T) {
	dir := useTempConfigDir(t)
	path := filepath.Join(dir, "focus", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("week_start_day = \"someday\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deps := DefaultDeps()
	t.Cleanup(func() {
		if deps.Services != nil {
			_ = deps.Services.Close()
		}
	})

	if deps.Config.WeekStartDay != "monday" {
		t.Errorf("expected default week start after an invalid config, got %s", deps.Config.WeekStartDay)
	}
	if deps.Services == nil {
		t.Errorf("expected services despite the invalid config, got %v", deps.ServicesErr)
	}
}

func TestDefaultDeps_StorageUnavailable(t *testing.T) {
	osutil.SetProvider(tempDirProvider{err: errors.New("no home directory")})
	t.Cleanup(osutil.ResetProvider)

	deps := DefaultDeps()
	if deps.Services != nil {
		t.Fatal("expected no services without a data directory")
	}
	if !errors.Is(deps.ServicesErr, service.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", deps.ServicesErr)
	}
	if deps.ConfigService() == nil {
		t.Error("expected a standalone config service")
	}
}

func TestLocalNow(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	fixed := time.Date(2025, 12, 13, 23, 30, 0, 0, time.UTC)
	deps := &Deps{Location: loc, Now: func() time.Time { return fixed }}

	got := deps.LocalNow()
	if got.Location() != loc || got.Day() != 14 || got.Hour() != 1 {
		t.Errorf("LocalNow() = %v, expected Dec 14 01:30 in UTC+2", got)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.level
			logger := NewLogger(&buf, cfg)

			logger.Debug("debug line")
			logger.Warn("warn line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, expected %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, expected %v", got, tt.wantWarn)
			}
		})
	}
}

func TestSetResetDeps(t *testing.T) {
	custom := &Deps{Stdout: &bytes.Buffer{}}
	SetDeps(custom)
	if GetDeps() != custom {
		t.Error("expected GetDeps to return the set deps")
	}

	ResetDeps()
	useTempConfigDir(t)
	current := GetDeps()
	t.Cleanup(ResetDeps)
	if current == custom {
		t.Error("expected ResetDeps to drop the custom deps")
	}
	if current.Stdout == nil {
		t.Error("expected reset deps to have non-nil Stdout")
	}
}
