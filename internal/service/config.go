package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/record"
)

// ConfigService provides operations for managing configuration
type ConfigService struct {
	configPath string

	mu     sync.RWMutex
	config config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update validates cfg and writes it to the config file.
// Storage and timezone changes apply from the next start.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := config.Write(s.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}

// Set changes a single key, as named in the config file, and saves.
func (s *ConfigService) Set(key, value string) error {
	cfg := s.Get()
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "week_start_day":
		cfg.WeekStartDay = value
	case "default_target_minutes":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			// Accept the same forms as goal targets, e.g. "40h".
			minutes, err = record.ParseTarget(value)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
		}
		cfg.DefaultTargetMinutes = minutes
	case "timezone":
		cfg.Timezone = value
	case "storage":
		cfg.Storage = value
	case "data_dir":
		cfg.DataDir = value
	case "theme":
		cfg.Theme = value
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("%w: unknown config key %q", ErrInvalidInput, key)
	}
	return s.Update(cfg)
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload reloads the configuration from disk
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}
