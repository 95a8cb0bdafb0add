package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFile_ReplacesContent(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "counts.json")

	require.NoError(t, s.SaveFile(path, []byte(`{"a": 1}`)))
	require.NoError(t, s.SaveFile(path, []byte(`{"b": 2}`)))

	data, err := s.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"b": 2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestReadFile_Missing(t *testing.T) {
	s := &Storage{}
	_, err := s.ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGetFileStats(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "x.txt")
	_, err := s.GetFileStats(path)
	require.Error(t, err)

	require.NoError(t, s.SaveFile(path, []byte("hello")))

	stats, err := s.GetFileStats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.SizeBytes)
	assert.False(t, stats.ModTime.IsZero())
}
