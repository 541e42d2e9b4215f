package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// MockPathProvider is a mock implementation for testing.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func TestDefaultPathProvider_MkdirAll(t *testing.T) {
	p := DefaultPathProvider{}
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	if err := p.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}

	info, err := os.Stat(testDir)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %v", err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll did not create a directory")
	}
}

func TestSetAndResetProvider(t *testing.T) {
	defer ResetProvider()

	mock := &MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "/mock/config", nil },
	}
	SetProvider(mock)

	if Provider != mock {
		t.Fatal("SetProvider did not set the provider")
	}

	ResetProvider()
	if _, ok := Provider.(DefaultPathProvider); !ok {
		t.Error("ResetProvider did not reset to DefaultPathProvider")
	}
}

func TestAppDir(t *testing.T) {
	defer ResetProvider()

	base := t.TempDir()
	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return base, nil },
		MkdirAllFn:      os.MkdirAll,
	})

	dir, err := AppDir("focus")
	if err != nil {
		t.Fatalf("AppDir returned error: %v", err)
	}
	if dir != filepath.Join(base, "focus") {
		t.Errorf("AppDir = %q, expected %q", dir, filepath.Join(base, "focus"))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("AppDir did not create directory: %v", err)
	}

	file, err := AppFile("focus", "config.toml")
	if err != nil {
		t.Fatalf("AppFile returned error: %v", err)
	}
	if file != filepath.Join(base, "focus", "config.toml") {
		t.Errorf("AppFile = %q", file)
	}
}

func TestAppDir_Errors(t *testing.T) {
	defer ResetProvider()
	expectedErr := errors.New("mock error")

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "", expectedErr },
	})
	if _, err := AppDir("focus"); !errors.Is(err, expectedErr) {
		t.Errorf("expected UserConfigDir error, got %v", err)
	}

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "/mock", nil },
		MkdirAllFn:      func(string, os.FileMode) error { return expectedErr },
	})
	if _, err := AppFile("focus", "x"); !errors.Is(err, expectedErr) {
		t.Errorf("expected MkdirAll error, got %v", err)
	}
}
