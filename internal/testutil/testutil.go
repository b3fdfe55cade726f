// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "hui-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteFile writes content to name inside dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	return path
}

// WriteHistory writes one history file per line set, joined with newlines,
// into a fresh temp directory and returns the paths in order.
func WriteHistory(t *testing.T, files ...[]string) []string {
	t.Helper()

	dir := TempDir(t)
	paths := make([]string, len(files))
	for i, lines := range files {
		name := filepath.Join("history", "hist-"+string(rune('a'+i)))
		content := strings.Join(lines, "\n")
		if len(lines) > 0 {
			content += "\n"
		}
		paths[i] = WriteFile(t, dir, name, content)
	}

	return paths
}

// IsolateHome points HOME and the XDG directories at a temp dir and clears
// the HUI_* and history environment variables for the test.
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := TempDir(t)
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("HISTFILE", "")
	t.Setenv("SHELL", "")

	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "HUI_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}

	return home
}
