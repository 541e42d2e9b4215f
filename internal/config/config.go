package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	tint "github.com/lrstanley/bubbletint"
	"github.com/xolan/focus/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "focus"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// DefaultTheme is the TUI theme used when none is configured.
const DefaultTheme = "dracula"

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageJSONL  = "jsonl"
)

var validWeekDays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Config represents the application configuration
type Config struct {
	// WeekStartDay is the week start used when a goal has to be created from defaults
	WeekStartDay string `toml:"week_start_day"`
	// DefaultTargetMinutes is the weekly target used when a goal has to be created from defaults
	DefaultTargetMinutes int `toml:"default_target_minutes"`
	// Timezone defines the timezone for day and week boundaries (IANA name or "Local")
	Timezone string `toml:"timezone"`
	// Storage selects the persistence backend ("sqlite" or "jsonl")
	Storage string `toml:"storage"`
	// DataDir overrides the directory holding the database / data files
	DataDir string `toml:"data_dir"`
	// Theme is the TUI color theme (bubbletint id)
	Theme string `toml:"theme"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		WeekStartDay:         "monday",
		DefaultTargetMinutes: 2400,
		Timezone:             "Local",
		Storage:              StorageSQLite,
		DataDir:              "",
		Theme:                DefaultTheme,
		LogLevel:             "warn",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(AppName, ConfigFile)
}

// Load reads and validates the config file at path.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns DefaultConfig when the file does not exist.
// Any other error (unreadable file, invalid content) is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lower-cases and trims enumerated fields in place.
func (c *Config) Normalize() {
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Theme = strings.TrimSpace(c.Theme)
}

// Validate checks that every field holds a supported value.
func (c Config) Validate() error {
	if !contains(validWeekDays, c.WeekStartDay) {
		return fmt.Errorf("invalid week_start_day %q: must be one of %s", c.WeekStartDay, strings.Join(validWeekDays, ", "))
	}
	if c.DefaultTargetMinutes <= 0 {
		return fmt.Errorf("invalid default_target_minutes %d: must be positive", c.DefaultTargetMinutes)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Storage != StorageSQLite && c.Storage != StorageJSONL {
		return fmt.Errorf("invalid storage %q: must be %q or %q", c.Storage, StorageSQLite, StorageJSONL)
	}
	if c.Theme != "" && !contains(Themes(), c.Theme) {
		return fmt.Errorf("invalid theme %q: see 'focus config set theme <TAB>' for the available themes", c.Theme)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Themes returns the ids of the bubbletint themes, sorted.
func Themes() []string {
	tints := tint.DefaultTints()
	ids := make([]string, 0, len(tints))
	for _, t := range tints {
		ids = append(ids, t.ID())
	}
	sort.Strings(ids)
	return ids
}

// Location resolves the configured timezone. Empty and "Local" mean time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
}

// ResolveDataDir returns DataDir, or the application config directory when unset.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		if err := osutil.Provider.MkdirAll(c.DataDir, 0755); err != nil {
			return "", err
		}
		return c.DataDir, nil
	}
	return osutil.AppDir(AppName)
}

// Write encodes cfg as TOML to path.
func Write(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# focus configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	if err := osutil.Provider.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// GenerateSampleConfig returns a commented sample configuration holding the defaults.
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# focus configuration file

# Week start used when a new goal is created: "sunday" through "saturday"
week_start_day = %q

# Weekly target in minutes used when a new goal is created (2400 = 40 hours)
default_target_minutes = %d

# Timezone for day and week boundaries: IANA name (e.g., "Europe/Berlin") or "Local"
timezone = %q

# Storage backend: "sqlite" or "jsonl"
storage = %q

# Directory for data files (empty = config directory)
data_dir = %q

# TUI theme
theme = %q

# Log level: debug, info, warn, error
log_level = %q
`, d.WeekStartDay, d.DefaultTargetMinutes, d.Timezone, d.Storage, d.DataDir, d.Theme, d.LogLevel)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
