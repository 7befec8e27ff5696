package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInputsSingleFile(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(clip, []byte("x"), 0644))

	videos, batch, err := resolveInputs(clip)
	require.NoError(t, err)
	assert.False(t, batch)
	assert.Equal(t, []string{clip}, videos)
}

func TestResolveInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mov", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	videos, batch, err := resolveInputs(dir)
	require.NoError(t, err)
	assert.True(t, batch)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mp4"),
		filepath.Join(dir, "b.mov"),
	}, videos)
}

func TestResolveInputsEmptyDirectory(t *testing.T) {
	_, _, err := resolveInputs(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video files")
}

func TestResolveInputsMissingPath(t *testing.T) {
	_, _, err := resolveInputs(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
