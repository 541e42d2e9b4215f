package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/goal"
)

// GoalService manages the single active goal
type GoalService struct {
	e *engine
}

// Load reads the active goal from the store, creating the default goal when
// there is none, and publishes a fresh snapshot. It is run once at startup.
// If the default goal cannot be saved the published state is unchanged.
func (s *GoalService) Load(ctx context.Context) (goal.Goal, error) {
	s.e.writeMu.Lock()
	defer s.e.writeMu.Unlock()

	g, err := s.e.loadGoalLocked(ctx)
	if err != nil {
		return goal.Goal{}, err
	}
	s.e.refreshLocked(ctx, g)
	return g, nil
}

// Current returns the published goal.
func (s *GoalService) Current() goal.Goal {
	return s.e.state.Snapshot().Goal
}

// Update replaces the weekly target and week start of the active goal.
// The current cycle is recomputed since its boundaries may move.
func (s *GoalService) Update(ctx context.Context, targetMinutes int, weekStart goal.WeekDay) (goal.Goal, error) {
	if targetMinutes <= 0 {
		return goal.Goal{}, fmt.Errorf("%w: %w: got %d", ErrInvalidInput, goal.ErrInvalidTarget, targetMinutes)
	}
	if !weekStart.Valid() {
		return goal.Goal{}, fmt.Errorf("%w: %w: got %d", ErrInvalidInput, goal.ErrInvalidWeekDay, int(weekStart))
	}

	var updated goal.Goal
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		g.WeeklyTargetMinutes = targetMinutes
		g.WeekStartDay = weekStart
		if err := s.e.store.UpdateGoal(ctx, g); err != nil {
			return g, fmt.Errorf("failed to save goal: %w", err)
		}
		updated = g
		return g, nil
	})
	return updated, err
}

// Rename changes the title of the active goal.
func (s *GoalService) Rename(ctx context.Context, title string) (goal.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return goal.Goal{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	var updated goal.Goal
	err := s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		g.Title = title
		if err := s.e.store.UpdateGoal(ctx, g); err != nil {
			return g, fmt.Errorf("failed to save goal: %w", err)
		}
		updated = g
		return g, nil
	})
	return updated, err
}

// ResetDefaults restores the configured default target and week start.
func (s *GoalService) ResetDefaults(ctx context.Context) (goal.Goal, error) {
	d := s.e.defaultGoal()
	return s.Update(ctx, d.WeeklyTargetMinutes, d.WeekStartDay)
}

// Delete removes a goal together with all of its records. Deleting the
// active goal makes a fresh default goal active.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.e.mutate(ctx, func(g goal.Goal) (goal.Goal, error) {
		if err := s.e.store.DeleteGoal(ctx, id); err != nil {
			return g, fmt.Errorf("failed to delete goal: %w", err)
		}
		s.e.logger.Info("deleted goal", "goal", id)
		if id != g.ID {
			return g, nil
		}

		next, err := s.e.loadGoalLocked(ctx)
		if err != nil {
			// The old goal is gone; make the next operation reload.
			s.e.state.invalidate()
			return g, err
		}
		return next, nil
	})
}
