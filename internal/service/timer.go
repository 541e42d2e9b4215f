package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/timer"
)

// Timer-specific errors
var (
	ErrTimerAlreadyRunning = errors.New("stopwatch is already running")
	ErrNoTimerRunning      = errors.New("no stopwatch is running")
)

// TimerService manages the stopwatch. Stopping it records the elapsed span
// as a timed record for the active goal.
type TimerService struct {
	e         *engine
	records   *RecordService
	timerPath string
}

// Start starts the stopwatch with optional notes.
// If force is true, it will override any existing stopwatch.
// Returns the existing state if one is running and force is false.
func (s *TimerService) Start(ctx context.Context, notes string, force bool) (*timer.TimerState, *timer.TimerState, error) {
	existing, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check stopwatch status: %w", err)
	}
	if existing != nil && !force {
		return nil, existing, ErrTimerAlreadyRunning
	}

	goalID, err := s.goalID(ctx)
	if err != nil {
		return nil, nil, err
	}

	state := timer.TimerState{
		StartedAt: s.e.now(),
		Notes:     strings.TrimSpace(notes),
		GoalID:    goalID,
	}
	if err := timer.SaveTimerState(s.timerPath, state); err != nil {
		return nil, nil, fmt.Errorf("failed to save stopwatch state: %w", err)
	}
	return &state, existing, nil
}

// Stop stops the stopwatch and creates a timed record for the elapsed span.
// A stopwatch that ran for less than a minute is left running and
// ErrInvalidInput is returned; Cancel discards it.
func (s *TimerService) Stop(ctx context.Context) (record.Record, *timer.TimerState, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return record.Record{}, nil, fmt.Errorf("failed to load stopwatch state: %w", err)
	}
	if state == nil {
		return record.Record{}, nil, ErrNoTimerRunning
	}

	r, err := s.records.AddTimed(ctx, state.StartedAt, s.e.now(), state.Notes)
	if err != nil {
		return record.Record{}, state, err
	}

	// The record is saved; a stale state file is overwritten by the next start.
	if err := timer.ClearTimerState(s.timerPath); err != nil {
		s.e.logger.Warn("failed to clear stopwatch state", "path", s.timerPath, "error", err)
	}
	return r, state, nil
}

// Cancel discards the stopwatch without creating a record
func (s *TimerService) Cancel() (*timer.TimerState, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load stopwatch state: %w", err)
	}
	if state == nil {
		return nil, ErrNoTimerRunning
	}

	if err := timer.ClearTimerState(s.timerPath); err != nil {
		return nil, fmt.Errorf("failed to clear stopwatch: %w", err)
	}
	return state, nil
}

// Status returns the current stopwatch status
func (s *TimerService) Status() (TimerStatus, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return TimerStatus{}, fmt.Errorf("failed to load stopwatch state: %w", err)
	}

	status := TimerStatus{Running: state != nil, State: state}
	if state != nil {
		status.ElapsedTime = state.Elapsed(s.e.now())
	}
	return status, nil
}

func (s *TimerService) goalID(ctx context.Context) (string, error) {
	s.e.writeMu.Lock()
	defer s.e.writeMu.Unlock()

	g, err := s.e.currentGoalLocked(ctx)
	if err != nil {
		return "", err
	}
	return g.ID, nil
}
