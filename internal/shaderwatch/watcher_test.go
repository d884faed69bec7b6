package shaderwatch

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsShaderEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pbr.fs"), []byte("void main() {}"), 0o644))

	var names []string
	require.Eventually(t, func() bool {
		names = append(names, w.Drain()...)
		return slices.Contains(names, "pbr.fs")
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotContains(t, names, "notes.txt")
}

func TestDrainDeduplicates(t *testing.T) {
	w := &Watcher{changes: make(chan string, queueSize)}
	w.changes <- "pbr.fs"
	w.changes <- "blur.fs"
	w.changes <- "pbr.fs"

	assert.Equal(t, []string{"pbr.fs", "blur.fs"}, w.Drain())
	assert.Empty(t, w.Drain())
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestCloseTwice(t *testing.T) {
	w, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NotPanics(t, func() { _ = w.Close() })
}
