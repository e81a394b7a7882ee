package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name inside dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Project lays out a runner.yml and tests/cases.json in a fresh temporary
// directory and returns the directory and both paths.
func Project(t *testing.T, runnerYAML, casesJSON string) (dir, configPath, casesPath string) {
	t.Helper()
	dir = t.TempDir()
	configPath = WriteFile(t, dir, "runner.yml", runnerYAML)
	casesPath = WriteFile(t, dir, filepath.Join("tests", "cases.json"), casesJSON)
	return dir, configPath, casesPath
}
