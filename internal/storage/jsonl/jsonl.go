// Package jsonl implements storage.Store on two JSON Lines files, one per
// entity collection, with rotated backups before destructive rewrites.
package jsonl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage"
)

const (
	// GoalsFile is the name of the goals collection
	GoalsFile = "goals.jsonl"
	// RecordsFile is the name of the records collection
	RecordsFile = "records.jsonl"
)

// Store implements storage.Store on JSON Lines files in a directory.
type Store struct {
	dir string
	loc *time.Location

	mu       sync.Mutex
	warnings []ParseWarning
}

var _ storage.Store = (*Store)(nil)

// Open prepares dir for use, creating it if needed.
func Open(dir string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}
	return &Store{dir: dir, loc: loc}, nil
}

// Path returns the full path of one of the collection files.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Warnings returns the parse warnings from the most recent read.
func (s *Store) Warnings() []ParseWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ParseWarning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error {
	return nil
}

func (s *Store) readGoals() ([]goal.Goal, error) {
	goals, warnings, err := readLines[goal.Goal](s.Path(GoalsFile), GoalsFile)
	s.warnings = warnings
	if err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	for i := range goals {
		goals[i].CreatedAt = goals[i].CreatedAt.In(s.loc)
	}
	return goals, nil
}

func (s *Store) readRecords() ([]record.Record, error) {
	records, warnings, err := readLines[record.Record](s.Path(RecordsFile), RecordsFile)
	s.warnings = append(s.warnings, warnings...)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	for i := range records {
		records[i] = records[i].In(s.loc)
	}
	return records, nil
}

// InsertGoal appends a goal.
func (s *Store) InsertGoal(ctx context.Context, g goal.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := appendLine(s.Path(GoalsFile), g); err != nil {
		return fmt.Errorf("failed to write goal: %w", err)
	}
	return nil
}

// UpdateGoal rewrites the goals file with g replacing the goal of the same id.
func (s *Store) UpdateGoal(ctx context.Context, g goal.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.readGoals()
	if err != nil {
		return err
	}

	idx := indexOfGoal(goals, g.ID)
	if idx < 0 {
		return fmt.Errorf("goal %s: %w", g.ID, storage.ErrNotFound)
	}
	goals[idx] = g

	if err := writeLines(s.Path(GoalsFile), goals); err != nil {
		return fmt.Errorf("failed to write goals: %w", err)
	}
	return nil
}

// DeleteGoal removes the goal and its records, backing up both files first.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.readGoals()
	if err != nil {
		return err
	}
	idx := indexOfGoal(goals, id)
	if idx < 0 {
		return fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}

	records, err := s.readRecords()
	if err != nil {
		return err
	}
	kept := make([]record.Record, 0, len(records))
	for _, r := range records {
		if r.GoalID != id {
			kept = append(kept, r)
		}
	}

	if err := CreateBackup(s.Path(GoalsFile)); err != nil {
		return fmt.Errorf("failed to back up goals: %w", err)
	}
	if err := CreateBackup(s.Path(RecordsFile)); err != nil {
		return fmt.Errorf("failed to back up records: %w", err)
	}

	// Records first: a failure between the two writes leaves no orphans.
	if err := writeLines(s.Path(RecordsFile), kept); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := writeLines(s.Path(GoalsFile), append(goals[:idx], goals[idx+1:]...)); err != nil {
		return fmt.Errorf("failed to write goals: %w", err)
	}
	return nil
}

// Goals returns goals newest first.
func (s *Store) Goals(ctx context.Context, f storage.GoalFilter) ([]goal.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.readGoals()
	if err != nil {
		return nil, err
	}

	out := make([]goal.Goal, 0, len(goals))
	for _, g := range goals {
		if f.ActiveOnly && !g.IsActive {
			continue
		}
		out = append(out, g)
	}
	storage.SortGoals(out)
	return out, nil
}

// InsertRecord appends a record after checking its goal exists and that it
// does not open a second clock session for the day.
func (s *Store) InsertRecord(ctx context.Context, r record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.readGoals()
	if err != nil {
		return err
	}
	if indexOfGoal(goals, r.GoalID) < 0 {
		return fmt.Errorf("goal %s: %w", r.GoalID, storage.ErrNotFound)
	}

	records, err := s.readRecords()
	if err != nil {
		return err
	}
	if storage.ClockConflict(records, r) {
		return fmt.Errorf("inserting record %s: %w", r.ID, storage.ErrConflict)
	}

	if err := appendLine(s.Path(RecordsFile), r); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// UpdateRecord rewrites the records file with r replacing the record of the same id.
func (s *Store) UpdateRecord(ctx context.Context, r record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return err
	}

	idx := indexOfRecord(records, r.ID)
	if idx < 0 {
		return fmt.Errorf("record %s: %w", r.ID, storage.ErrNotFound)
	}
	if storage.ClockConflict(records, r) {
		return fmt.Errorf("updating record %s: %w", r.ID, storage.ErrConflict)
	}
	records[idx] = r

	if err := writeLines(s.Path(RecordsFile), records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// DeleteRecord removes a record, backing up the records file first.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return err
	}

	idx := indexOfRecord(records, id)
	if idx < 0 {
		return fmt.Errorf("record %s: %w", id, storage.ErrNotFound)
	}

	if err := CreateBackup(s.Path(RecordsFile)); err != nil {
		return fmt.Errorf("failed to back up records: %w", err)
	}
	if err := writeLines(s.Path(RecordsFile), append(records[:idx], records[idx+1:]...)); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// GetRecord returns a single record by id.
func (s *Store) GetRecord(ctx context.Context, id string) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return record.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return record.Record{}, err
	}
	idx := indexOfRecord(records, id)
	if idx < 0 {
		return record.Record{}, fmt.Errorf("record %s: %w", id, storage.ErrNotFound)
	}
	return records[idx], nil
}

// Records returns records matching f, ordered by date.
func (s *Store) Records(ctx context.Context, f storage.RecordFilter) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnings = nil
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	storage.SortRecords(out, f.Descending)
	return out, nil
}

func indexOfGoal(goals []goal.Goal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func indexOfRecord(records []record.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
