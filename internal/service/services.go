package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/timer"
)

// Services holds all service instances used by the application
type Services struct {
	State   *State
	Goal    *GoalService
	Record  *RecordService
	Clock   *ClockService
	Stats   *StatsService
	Timer   *TimerService
	Config  *ConfigService
	Storage *StorageService

	store storage.Store
}

// Options configure NewServicesWithStore. Zero values select defaults:
// time.Local, time.Now and a logger that discards everything.
type Options struct {
	Config     config.Config
	ConfigPath string
	TimerPath  string
	// StoreLocation is the database file or data directory, for reporting.
	StoreLocation string
	Location      *time.Location
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewServices opens the configured store with default paths and loads the
// active goal, creating the default goal on first use.
func NewServices(cfg config.Config, logger *slog.Logger) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	// The stopwatch lives next to the records when data_dir is set
	var timerPath string
	if cfg.DataDir != "" {
		timerPath = timer.PathIn(cfg.DataDir)
	} else if timerPath, err = timer.GetTimerPath(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	store, location, err := OpenStore(cfg, loc)
	if err != nil {
		return nil, err
	}

	svc := NewServicesWithStore(store, Options{
		Config:        cfg,
		ConfigPath:    configPath,
		TimerPath:     timerPath,
		StoreLocation: location,
		Location:      loc,
		Logger:        logger,
	})
	if _, err := svc.Goal.Load(context.Background()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	return svc, nil
}

// NewServicesWithStore creates a Services instance on an open store (useful
// for testing). Nothing is read until the first operation or Goal.Load.
func NewServicesWithStore(store storage.Store, opts Options) *Services {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &engine{
		store:    store,
		loc:      opts.Location,
		clock:    opts.Now,
		logger:   opts.Logger,
		defaults: opts.Config,
	}
	e.state = newState(e)

	goals := &GoalService{e: e}
	records := &RecordService{e: e}

	return &Services{
		State:   e.state,
		Goal:    goals,
		Record:  records,
		Clock:   &ClockService{e: e},
		Stats:   &StatsService{e: e},
		Timer:   &TimerService{e: e, records: records, timerPath: opts.TimerPath},
		Config:  NewConfigService(opts.ConfigPath, opts.Config),
		Storage: &StorageService{e: e, goals: goals, location: opts.StoreLocation},
		store:   store,
	}
}

// Close releases the store.
func (s *Services) Close() error {
	return s.store.Close()
}
