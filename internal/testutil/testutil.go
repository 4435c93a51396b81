// Package testutil provides test helpers and fixtures for scan tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestFixture holds the root of an isolated temp tree for one test.
type TestFixture struct {
	T       *testing.T
	RootDir string // auto-cleaned by t.TempDir
}

// NewFixture creates a fixture rooted in a fresh temp directory.
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()
	return &TestFixture{T: t, RootDir: t.TempDir()}
}

// Path returns the full path for a relative path within the fixture.
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// CreateFile creates a file with the given content and returns its path.
// Parent directories are created as needed.
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFileWithSize creates a file of the given size filled with zeros.
func (f *TestFixture) CreateFileWithSize(relPath string, size int) string {
	f.T.Helper()
	return f.CreateFile(relPath, make([]byte, size))
}

// CreateFileWithAge creates a file and backdates its modification time.
func (f *TestFixture) CreateFileWithAge(relPath string, size int, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFileWithSize(relPath, size)
	oldTime := time.Now().Add(-age)
	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateDir creates a directory and returns its path.
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateSymlink creates a symbolic link inside the fixture.
func (f *TestFixture) CreateSymlink(target, linkRelPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkRelPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}
	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}
	return fullLinkPath
}

// SkipIfRoot skips the test when running as root, where permission-based
// scenarios cannot be exercised.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("skipping test when running as root")
	}
}
