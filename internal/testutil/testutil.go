// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// envVars are the SITECFG_* variables read by the CLI.
var envVars = []string{
	"SITECFG_CONFIG",
	"SITECFG_SITE",
	"SITECFG_OUTPUT",
	"SITECFG_LOG_TIMESTAMPS",
}

// IsolateEnv points HOME at a fresh temp dir and clears every SITECFG_*
// variable for the duration of the test. It returns the new HOME.
func IsolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	return home
}

// WriteFile creates a file with the given content in the specified directory,
// creating parent directories as needed.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteToolConfig writes content to $HOME/.sitecfg/config.yaml.
func WriteToolConfig(t *testing.T, home, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(home, ".sitecfg"), "config.yaml", content)
}
