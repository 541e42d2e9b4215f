package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/cli"
)

// keys that only take effect when the store is reopened
var restartKeys = map[string]bool{"storage": true, "data_dir": true, "timezone": true}

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfgSvc := deps.ConfigService()
	cfg := cfgSvc.Get()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", cfgSvc.GetPath())
	if cfgSvc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "week_start_day:         %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "default_target_minutes: %d\n", cfg.DefaultTargetMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:               %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "storage:                %s\n", cfg.Storage)
	if cfg.DataDir == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "data_dir:               (config directory)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "data_dir:               %s\n", cfg.DataDir)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "theme:                  %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:              %s\n", cfg.LogLevel)

	if deps.ServicesErr != nil {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintf(deps.Stdout, "Storage unavailable: %v\n", deps.ServicesErr)
	}
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	cfgSvc := deps.ConfigService()
	if err := cfgSvc.Init(); err != nil {
		reportError(deps, "Failed to create config file", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", cfgSvc.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

// SetConfig changes one key of the config file
func SetConfig(deps *cli.Deps, key, value string) {
	cfgSvc := deps.ConfigService()
	if err := cfgSvc.Set(key, value); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to set %s\n", key)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Keys: week_start_day, default_target_minutes, timezone, storage, data_dir, theme, log_level")
		deps.Exit(1)
		return
	}

	key = strings.ToLower(strings.TrimSpace(key))
	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, strings.TrimSpace(value))
	if restartKeys[key] {
		_, _ = fmt.Fprintln(deps.Stdout, "The change takes effect on the next command.")
	}
}
