package testutil

import (
	"path/filepath"
	"testing"

	"github.com/omarchy-fork/omacustom/pkg/types"
)

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertMissing fails the test if path exists
func AssertMissing(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	if _, err := fsys.Stat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	}
}
