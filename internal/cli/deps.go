package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil when the store could not be opened; ServicesErr holds the cause.
	Services    *service.Services
	ServicesErr error

	Config     config.Config
	ConfigPath string
	Location   *time.Location
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewLogger builds the stderr text logger at the configured level.
// An unknown level falls back to warn.
func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DefaultDeps loads the config file and opens the configured store.
// An unreadable config file falls back to the defaults with a warning.
func DefaultDeps() *Deps {
	cfg := config.DefaultConfig()
	configPath, pathErr := config.GetConfigPath()
	var loadErr error
	if pathErr == nil {
		if loaded, err := config.LoadOrDefault(configPath); err == nil {
			cfg = loaded
		} else {
			loadErr = err
		}
	}

	logger := NewLogger(os.Stderr, cfg)
	if pathErr != nil {
		logger.Warn("failed to determine config file location, using defaults", "error", pathErr)
	}
	if loadErr != nil {
		logger.Warn("failed to load config file, using defaults", "path", configPath, "error", loadErr)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("invalid timezone, using local time", "timezone", cfg.Timezone, "error", err)
		loc = time.Local
	}

	services, err := service.NewServices(cfg, logger)

	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		Services:    services,
		ServicesErr: err,
		Config:      cfg,
		ConfigPath:  configPath,
		Location:    loc,
		Now:         time.Now,
		Logger:      logger,
	}
}

// LocalNow returns the current time in the configured timezone.
func (d *Deps) LocalNow() time.Time {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Log returns the logger, discarding output when none is set.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// ConfigService returns the services' config facade, or a standalone one
// when the store is unavailable so the config can still be repaired.
func (d *Deps) ConfigService() *service.ConfigService {
	if d.Services != nil {
		return d.Services.Config
	}
	return service.NewConfigService(d.ConfigPath, d.Config)
}

// Global deps instance for CLI, created on first use
var deps *Deps

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps drops the current deps, closing their store.
// The next GetDeps call builds fresh defaults.
func ResetDeps() {
	if deps != nil && deps.Services != nil {
		_ = deps.Services.Close()
	}
	deps = nil
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	if deps == nil {
		deps = DefaultDeps()
	}
	return deps
}
