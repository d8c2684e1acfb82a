package pathwire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
)

func writeFakeTool(t *testing.T, dir string, mode os.FileMode) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "sccache")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode))
	return path
}

func TestPublishWiresManagedBinary(t *testing.T) {
	managed := writeFakeTool(t, filepath.Join(t.TempDir(), "cache"), 0755)
	pathFile := filepath.Join(t.TempDir(), "job_path")
	t.Setenv("PATH", "/nonexistent")
	t.Setenv("GITHUB_PATH", pathFile)
	env := hostenv.Capture()

	resolved, err := Publish(env, managed)
	require.NoError(t, err)
	assert.Equal(t, managed, resolved)

	data, err := os.ReadFile(pathFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(managed)+"\n", string(data))
}

func TestPublishBeatsDecoyOnPath(t *testing.T) {
	decoy := writeFakeTool(t, filepath.Join(t.TempDir(), "decoy"), 0755)
	managed := writeFakeTool(t, filepath.Join(t.TempDir(), "cache"), 0755)
	t.Setenv("PATH", filepath.Dir(decoy))
	t.Setenv("GITHUB_PATH", "")
	env := hostenv.Capture()

	resolved, err := Publish(env, managed)
	require.NoError(t, err)
	assert.Equal(t, managed, resolved)
	assert.NotEqual(t, decoy, resolved)
}

func TestPublishNotInstalled(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "cache", "sccache")
	require.NoError(t, os.MkdirAll(filepath.Dir(missing), 0755))
	t.Setenv("PATH", "/nonexistent")
	t.Setenv("GITHUB_PATH", "")
	env := hostenv.Capture()

	_, err := Publish(env, missing)
	require.Error(t, err)

	var werr *WiringError
	require.ErrorAs(t, err, &werr)
	assert.False(t, werr.BinaryExists)
	assert.Contains(t, err.Error(), "never installed")
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, err.Error(), "PATH=")
}

func TestPublishInstalledButNotWired(t *testing.T) {
	// Present but not executable: lookup fails even though the file exists.
	managed := writeFakeTool(t, filepath.Join(t.TempDir(), "cache"), 0644)
	t.Setenv("PATH", "/nonexistent")
	t.Setenv("GITHUB_PATH", "")
	env := hostenv.Capture()

	_, err := Publish(env, managed)
	require.Error(t, err)

	var werr *WiringError
	require.ErrorAs(t, err, &werr)
	assert.True(t, werr.BinaryExists)
	assert.Contains(t, err.Error(), "PATH wiring is broken")
}
