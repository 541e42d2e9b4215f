package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/storage/sqlite"
)

var errDisk = errors.New("disk unavailable")

// Saturday 2025-12-13 14:00 UTC; the Monday cycle is Dec 8 - Dec 14.
var testNow = time.Date(2025, 12, 13, 14, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// failingStore wraps a real store and fails selected operations.
type failingStore struct {
	storage.Store

	mu          sync.Mutex
	goalsErr    error
	recordsErr  error
	insertErr   error
	updateErr   error
	deleteErr   error
	recordCalls int
}

func (f *failingStore) set(fn func(f *failingStore)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

func (f *failingStore) Goals(ctx context.Context, gf storage.GoalFilter) ([]goal.Goal, error) {
	f.mu.Lock()
	err := f.goalsErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.Goals(ctx, gf)
}

func (f *failingStore) Records(ctx context.Context, rf storage.RecordFilter) ([]record.Record, error) {
	f.mu.Lock()
	f.recordCalls++
	err := f.recordsErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.Records(ctx, rf)
}

func (f *failingStore) InsertGoal(ctx context.Context, g goal.Goal) error {
	f.mu.Lock()
	err := f.insertErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.InsertGoal(ctx, g)
}

func (f *failingStore) InsertRecord(ctx context.Context, r record.Record) error {
	f.mu.Lock()
	err := f.insertErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.InsertRecord(ctx, r)
}

func (f *failingStore) UpdateRecord(ctx context.Context, r record.Record) error {
	f.mu.Lock()
	err := f.updateErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.UpdateRecord(ctx, r)
}

func (f *failingStore) UpdateGoal(ctx context.Context, g goal.Goal) error {
	f.mu.Lock()
	err := f.updateErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.UpdateGoal(ctx, g)
}

func (f *failingStore) DeleteRecord(ctx context.Context, id string) error {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.DeleteRecord(ctx, id)
}

func newMemoryStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath, time.UTC)
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// newTestServices returns services on an in-memory store with the clock at
// testNow and the goal already loaded.
func newTestServices(t *testing.T) (*Services, *fakeClock) {
	t.Helper()
	svc, clock, _ := newTestServicesWithStore(t, nil)
	return svc, clock
}

// newTestServicesWithStore is like newTestServices but routes every call
// through a failingStore. setup runs before the goal is loaded.
func newTestServicesWithStore(t *testing.T, setup func(f *failingStore)) (*Services, *fakeClock, *failingStore) {
	t.Helper()
	clock := &fakeClock{now: testNow}
	fs := &failingStore{Store: newMemoryStore(t)}
	if setup != nil {
		setup(fs)
	}

	dir := t.TempDir()
	svc := NewServicesWithStore(fs, Options{
		Config:     config.DefaultConfig(),
		ConfigPath: filepath.Join(dir, "config.toml"),
		TimerPath:  filepath.Join(dir, "timer.json"),
		Location:   time.UTC,
		Now:        clock.Now,
	})
	if _, err := svc.Goal.Load(context.Background()); err != nil && setup == nil {
		t.Fatalf("Goal.Load() error: %v", err)
	}
	return svc, clock, fs
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 12, day, hour, minute, 0, 0, time.UTC)
}
