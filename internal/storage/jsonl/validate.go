package jsonl

import (
	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
)

// FileHealth contains information about the health status of one data file.
type FileHealth struct {
	Name             string         // Base name of the file
	Path             string         // Full path of the file
	TotalLines       int            // Total number of non-empty lines
	ValidEntries     int            // Number of successfully parsed lines
	CorruptedEntries int            // Number of corrupted/malformed lines
	Warnings         []ParseWarning // Detailed information about each corrupted line
	Backups          []BackupInfo   // Available backups, most recent first
}

// Healthy reports whether every line parsed.
func (h FileHealth) Healthy() bool {
	return h.CorruptedEntries == 0
}

// Validate analyzes both data files and returns their health.
// Missing files are reported as empty and healthy.
func (s *Store) Validate() ([]FileHealth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := validateFile[goal.Goal](s.Path(GoalsFile), GoalsFile)
	if err != nil {
		return nil, err
	}
	records, err := validateFile[record.Record](s.Path(RecordsFile), RecordsFile)
	if err != nil {
		return nil, err
	}
	return []FileHealth{goals, records}, nil
}

// RestoreBackup restores backup n of the named collection file.
func (s *Store) RestoreBackup(name string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RestoreBackup(s.Path(name), n)
}

func validateFile[T any](path, name string) (FileHealth, error) {
	health := FileHealth{Name: name, Path: path, Warnings: []ParseWarning{}}

	total, err := countLines(path)
	if err != nil {
		return health, err
	}
	items, warnings, err := readLines[T](path, name)
	if err != nil {
		return health, err
	}

	health.TotalLines = total
	health.ValidEntries = len(items)
	health.CorruptedEntries = len(warnings)
	health.Warnings = warnings
	health.Backups = ListBackups(path)
	return health, nil
}
