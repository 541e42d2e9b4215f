// Package sqlite implements storage.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/storage"
)

// DatabaseFile is the default database file name inside the data directory.
const DatabaseFile = "focus.db"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements storage.Store using SQLite.
type Store struct {
	db  *sqlx.DB
	loc *time.Location
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the database at path, enables WAL mode and
// foreign keys, and runs any pending schema migrations. Times read back are
// converted to loc.
func Open(path string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: a single writer, and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, loc: loc}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	return v, err
}

// InsertGoal adds a new goal.
func (s *Store) InsertGoal(ctx context.Context, g goal.Goal) error {
	const query = `
		INSERT INTO goals (id, title, weekly_target_minutes, week_start_day, created_at, is_active)
		VALUES (:id, :title, :weekly_target_minutes, :week_start_day, :created_at, :is_active)`

	if _, err := s.db.NamedExecContext(ctx, query, toGoalRow(g)); err != nil {
		return fmt.Errorf("inserting goal %s: %w", g.ID, err)
	}
	return nil
}

// UpdateGoal replaces every mutable field of an existing goal.
func (s *Store) UpdateGoal(ctx context.Context, g goal.Goal) error {
	const query = `
		UPDATE goals SET
			title = :title,
			weekly_target_minutes = :weekly_target_minutes,
			week_start_day = :week_start_day,
			is_active = :is_active
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, query, toGoalRow(g))
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", g.ID, err)
	}
	return expectOneRow(res, "goal", g.ID)
}

// DeleteGoal removes a goal and its records in one transaction.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE goal_id = ?", id); err != nil {
		return fmt.Errorf("deleting records of goal %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	if err := expectOneRow(res, "goal", id); err != nil {
		return err
	}

	return tx.Commit()
}

// Goals returns goals newest first.
func (s *Store) Goals(ctx context.Context, f storage.GoalFilter) ([]goal.Goal, error) {
	query := "SELECT * FROM goals"
	if f.ActiveOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	var rows []goalRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}

	goals := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := row.toGoal(s.loc)
		if err != nil {
			return nil, fmt.Errorf("reading goal %s: %w", row.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// InsertRecord adds a new record.
func (s *Store) InsertRecord(ctx context.Context, r record.Record) error {
	const query = `
		INSERT INTO records (
			id, goal_id, date, day, duration_minutes,
			start_time, end_time, clock_in_time, clock_out_time,
			work_duration_minutes, notes, created_at, clock_session
		) VALUES (
			:id, :goal_id, :date, :day, :duration_minutes,
			:start_time, :end_time, :clock_in_time, :clock_out_time,
			:work_duration_minutes, :notes, :created_at, :clock_session
		)`

	if _, err := s.db.NamedExecContext(ctx, query, toRecordRow(r)); err != nil {
		return fmt.Errorf("inserting record %s: %w", r.ID, translate(err))
	}
	return nil
}

// UpdateRecord replaces every mutable field of an existing record.
func (s *Store) UpdateRecord(ctx context.Context, r record.Record) error {
	const query = `
		UPDATE records SET
			goal_id = :goal_id,
			date = :date,
			day = :day,
			duration_minutes = :duration_minutes,
			start_time = :start_time,
			end_time = :end_time,
			clock_in_time = :clock_in_time,
			clock_out_time = :clock_out_time,
			work_duration_minutes = :work_duration_minutes,
			notes = :notes,
			clock_session = :clock_session
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, query, toRecordRow(r))
	if err != nil {
		return fmt.Errorf("updating record %s: %w", r.ID, translate(err))
	}
	return expectOneRow(res, "record", r.ID)
}

// DeleteRecord removes a record by id.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	return expectOneRow(res, "record", id)
}

// GetRecord returns a single record by id.
func (s *Store) GetRecord(ctx context.Context, id string) (record.Record, error) {
	var row recordRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM records WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, fmt.Errorf("record %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("getting record %s: %w", id, err)
	}
	return row.toRecord(s.loc)
}

// Records returns records matching f, ordered by date.
func (s *Store) Records(ctx context.Context, f storage.RecordFilter) ([]record.Record, error) {
	var (
		conditions []string
		args       []any
	)

	if f.GoalID != "" {
		conditions = append(conditions, "goal_id = ?")
		args = append(args, f.GoalID)
	}
	if !f.From.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, formatTime(f.From))
	}
	if !f.To.IsZero() {
		conditions = append(conditions, "date < ?")
		args = append(args, formatTime(f.To))
	}
	if f.ClockOnly {
		conditions = append(conditions, "(clock_session = 1 OR clock_in_time IS NOT NULL OR clock_out_time IS NOT NULL)")
	}

	query := "SELECT * FROM records"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if f.Descending {
		query += " ORDER BY date DESC, created_at DESC"
	} else {
		query += " ORDER BY date ASC, created_at ASC"
	}

	var rows []recordRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	records := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		r, err := row.toRecord(s.loc)
		if err != nil {
			return nil, fmt.Errorf("reading record %s: %w", row.ID, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

// translate maps constraint failures onto storage sentinel errors.
func translate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: records.goal_id, records.day"):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: goal does not exist: %v", storage.ErrNotFound, err)
	}
	return err
}
