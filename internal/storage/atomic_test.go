package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meta.json")

	require.NoError(t, WriteJSON(path, map[string]string{"id": "dQw4w9WgXcQ"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "dQw4w9WgXcQ"}`, string(data))
	assert.Contains(t, string(data), "  ")
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestWriteJSONKeepsOldContentOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"old":true}`), 0o644))

	err := WriteJSON(path, map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"old":true}`, string(data))
	assertNoTempFiles(t, dir)
}

func TestAtomicWriterAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	assert.NoFileExists(t, path)
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".filekit-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
