package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/storage"
	"github.com/xolan/focus/internal/storage/jsonl"
	"github.com/xolan/focus/internal/storage/sqlite"
)

// ErrBackendUnsupported is returned for operations the configured backend does not offer.
var ErrBackendUnsupported = errors.New("not supported by this storage backend")

// OpenStore opens the backend selected by cfg.Storage in the configured data
// directory. Failures wrap ErrStorageUnavailable.
func OpenStore(cfg config.Config, loc *time.Location) (storage.Store, string, error) {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to resolve data directory: %w", ErrStorageUnavailable, err)
	}

	switch cfg.Storage {
	case config.StorageJSONL:
		store, err := jsonl.Open(dir, loc)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return store, dir, nil
	case config.StorageSQLite, "":
		path := filepath.Join(dir, sqlite.DatabaseFile)
		store, err := sqlite.Open(path, loc)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return store, path, nil
	}
	return nil, "", fmt.Errorf("%w: unknown storage backend %q", ErrStorageUnavailable, cfg.Storage)
}

// StorageService reports on and repairs the configured backend
type StorageService struct {
	e        *engine
	goals    *GoalService
	location string
}

// Backend returns the name of the configured backend.
func (s *StorageService) Backend() string {
	switch s.e.store.(type) {
	case *jsonl.Store:
		return config.StorageJSONL
	case *sqlite.Store:
		return config.StorageSQLite
	}
	return fmt.Sprintf("%T", s.e.store)
}

// Health inspects the backend: the schema version for sqlite, per-file
// line counts and backups for jsonl.
func (s *StorageService) Health(ctx context.Context) (StorageHealth, error) {
	h := StorageHealth{Backend: s.Backend(), Location: s.location}

	switch store := s.e.store.(type) {
	case *jsonl.Store:
		files, err := store.Validate()
		if err != nil {
			return h, fmt.Errorf("failed to validate data files: %w", err)
		}
		h.Files = files
	case *sqlite.Store:
		v, err := store.SchemaVersion(ctx)
		if err != nil {
			return h, fmt.Errorf("failed to read schema version: %w", err)
		}
		h.SchemaVersion = v
	}
	return h, nil
}

// Restore replaces both jsonl collections with backup n and reloads the
// active goal.
func (s *StorageService) Restore(ctx context.Context, n int) error {
	store, ok := s.e.store.(*jsonl.Store)
	if !ok {
		return fmt.Errorf("restore: %w", ErrBackendUnsupported)
	}
	if n < 1 || n > jsonl.MaxBackupCount {
		return fmt.Errorf("%w: backup number must be between 1 and %d", ErrInvalidInput, jsonl.MaxBackupCount)
	}

	restored := 0
	for _, name := range []string{jsonl.GoalsFile, jsonl.RecordsFile} {
		if !hasBackup(store.Path(name), n) {
			continue
		}
		if err := store.RestoreBackup(name, n); err != nil {
			return fmt.Errorf("failed to restore %s: %w", name, err)
		}
		restored++
	}
	if restored == 0 {
		return fmt.Errorf("backup %d: %w", n, storage.ErrNotFound)
	}

	s.e.state.invalidate()
	_, err := s.goals.Load(ctx)
	return err
}

func hasBackup(path string, n int) bool {
	for _, b := range jsonl.ListBackups(path) {
		if b.Number == n {
			return true
		}
	}
	return false
}
