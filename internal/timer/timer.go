// Package timer persists the running stopwatch between invocations.
package timer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/xolan/focus/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "focus"
	// TimerFile is the name of the JSON timer state file
	TimerFile = "timer.json"
)

// TimerState represents the state of a running stopwatch
type TimerState struct {
	StartedAt time.Time `json:"started_at"`
	Notes     string    `json:"notes,omitempty"`
	GoalID    string    `json:"goal_id"`
}

// Elapsed returns the time since the stopwatch started.
func (s TimerState) Elapsed(now time.Time) time.Duration {
	if now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// GetTimerPath returns the path to the timer state file in the default
// application directory, creating the directory if needed.
func GetTimerPath() (string, error) {
	return osutil.AppFile(AppName, TimerFile)
}

// PathIn returns the timer state file path inside dir.
func PathIn(dir string) string {
	return filepath.Join(dir, TimerFile)
}

// SaveTimerState writes the timer state to the timer file.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func SaveTimerState(path string, state TimerState) error {
	// TimerState struct contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(state, "", "  ")

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

// LoadTimerState reads the timer state from the timer file.
// Returns nil if the file doesn't exist (no running stopwatch).
// Returns an error if the file exists but cannot be read or parsed.
func LoadTimerState(path string) (*TimerState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// ClearTimerState removes the timer state file.
// Returns nil if the file doesn't exist (idempotent operation).
func ClearTimerState(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
