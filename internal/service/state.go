package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/timeutil"
)

// engine is shared by every service. writeMu admits one mutation at a time;
// a mutation persists, then rebuilds and publishes the snapshot before the
// lock is released.
type engine struct {
	store    storage.Store
	loc      *time.Location
	clock    func() time.Time
	logger   *slog.Logger
	defaults config.Config

	writeMu sync.Mutex
	state   *State
}

func (e *engine) now() time.Time {
	return e.clock().In(e.loc)
}

// defaultGoal builds the goal created when no active goal exists, using the
// configured target and week start.
func (e *engine) defaultGoal() goal.Goal {
	target := e.defaults.DefaultTargetMinutes
	if target <= 0 {
		target = goal.DefaultTargetMinutes
	}
	weekStart, err := goal.ParseWeekDay(e.defaults.WeekStartDay)
	if err != nil {
		weekStart = goal.DefaultWeekStart
	}
	return goal.New(goal.DefaultTitle, target, weekStart, e.now())
}

// loadGoalLocked returns the active goal, creating the default one when none
// exists or the query fails. When several goals are active the newest one
// with records wins and the others are deactivated.
func (e *engine) loadGoalLocked(ctx context.Context) (goal.Goal, error) {
	goals, err := e.store.Goals(ctx, storage.GoalFilter{ActiveOnly: true})
	if err != nil {
		e.logger.Warn("failed to query goals, creating default goal", "error", err)
		goals = nil
	}

	if len(goals) > 0 {
		current, ok := e.pickActiveGoal(ctx, goals)
		if !ok {
			return current, nil
		}
		for _, extra := range goals {
			if extra.ID == current.ID {
				continue
			}
			extra.IsActive = false
			if err := e.store.UpdateGoal(ctx, extra); err != nil {
				e.logger.Warn("failed to deactivate extra active goal", "goal", extra.ID, "error", err)
				continue
			}
			e.logger.Info("deactivated extra active goal", "goal", extra.ID, "kept", current.ID)
		}
		return current, nil
	}

	g := e.defaultGoal()
	if err := e.store.InsertGoal(ctx, g); err != nil {
		return goal.Goal{}, fmt.Errorf("failed to save default goal: %w", err)
	}
	e.logger.Info("created default goal", "goal", g.ID, "target_minutes", g.WeeklyTargetMinutes, "week_start", g.WeekStartDay)
	return g, nil
}

// pickActiveGoal chooses among active goals, newest first. A default goal
// created while the goal query was failing has no records, so an older goal
// with history is preferred over it. ok is false when the choice could not
// be checked against the store; nothing should be deactivated then.
func (e *engine) pickActiveGoal(ctx context.Context, goals []goal.Goal) (g goal.Goal, ok bool) {
	if len(goals) == 1 {
		return goals[0], true
	}
	for _, candidate := range goals {
		records, err := e.store.Records(ctx, storage.RecordFilter{GoalID: candidate.ID})
		if err != nil {
			e.logger.Warn("failed to check goal records, keeping every active goal", "goal", candidate.ID, "error", err)
			return goals[0], false
		}
		if len(records) > 0 {
			return candidate, true
		}
	}
	return goals[0], true
}

// currentGoalLocked returns the published goal, loading it on first use.
func (e *engine) currentGoalLocked(ctx context.Context) (goal.Goal, error) {
	if g, ok := e.state.loadedGoal(); ok {
		return g, nil
	}
	return e.loadGoalLocked(ctx)
}

// refreshLocked rebuilds the snapshot for g from the store. A failed query
// publishes empty lists and marks the snapshot degraded.
func (e *engine) refreshLocked(ctx context.Context, g goal.Goal) {
	now := e.now()
	cycle := timeutil.CycleContaining(now, g.WeekStartDay.Weekday())
	snap := Snapshot{
		Goal:               g,
		TodaysRecords:      []record.Record{},
		CurrentWeekRecords: []record.Record{},
		Cycle:              cycle,
		RefreshedAt:        now,
	}

	records, err := e.store.Records(ctx, storage.ForCycle(g.ID, cycle))
	if err != nil {
		e.logger.Warn("failed to query records, showing empty lists", "goal", g.ID, "cycle", cycle.DisplayName(), "error", err)
		snap.Degraded = true
		snap.LastError = err
	} else {
		snap.CurrentWeekRecords = stats.RecordsInCycle(records, g.ID, cycle)
		snap.TodaysRecords = stats.TodaysRecords(records, g.ID, now)
		snap.CurrentWeekProgress = stats.WeekProgressMinutes(snap.CurrentWeekRecords)
	}

	e.state.publish(snap)
}

// mutate runs fn against the current goal under the writer lock. When fn
// succeeds the snapshot is rebuilt for the goal fn returns. When it fails the
// published snapshot is left as it was.
func (e *engine) mutate(ctx context.Context, fn func(g goal.Goal) (goal.Goal, error)) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	g, err := e.currentGoalLocked(ctx)
	if err != nil {
		return err
	}
	next, err := fn(g)
	if err != nil {
		return err
	}
	e.refreshLocked(ctx, next)
	return nil
}

// State publishes the current goal and its aggregated records.
// Subscribers are called synchronously after every refresh and must not
// call back into a mutation.
type State struct {
	e *engine

	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
	subs   map[int]func(Snapshot)
	nextID int
}

func newState(e *engine) *State {
	return &State{e: e, subs: make(map[int]func(Snapshot))}
}

// Snapshot returns a copy of the published state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Loaded reports whether a goal has been published.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe registers fn to receive every new snapshot. The returned
// function removes the subscription and is safe to call more than once.
func (s *State) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Refresh re-reads the current goal's records and republishes.
func (s *State) Refresh(ctx context.Context) error {
	s.e.writeMu.Lock()
	defer s.e.writeMu.Unlock()

	g, err := s.e.currentGoalLocked(ctx)
	if err != nil {
		return err
	}
	s.e.refreshLocked(ctx, g)
	return nil
}

// Tick refreshes when now falls on a later calendar day than the last
// refresh, so "today" and the current cycle roll over at midnight.
// It reports whether a refresh happened.
func (s *State) Tick(ctx context.Context, now time.Time) (bool, error) {
	s.mu.RLock()
	last, loaded := s.snap.RefreshedAt, s.loaded
	s.mu.RUnlock()

	if !loaded || timeutil.SameDay(now.In(s.e.loc), last) {
		return false, nil
	}
	return true, s.Refresh(ctx)
}

func (s *State) loadedGoal() (goal.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Goal, s.loaded
}

// invalidate forces the next operation to reload the goal from the store.
func (s *State) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *State) publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.loaded = true
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap.clone())
	}
}
