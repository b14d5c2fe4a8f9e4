package marker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	assert.Equal(t, "2026/08/30", Day(time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026/01/02", Day(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestIsIndicator(t *testing.T) {
	assert.True(t, IsIndicator("cback.collect"))
	assert.True(t, IsIndicator("cback.stage"))
	assert.True(t, IsIndicator("cback.store"))
	assert.False(t, IsIndicator("cback.other"))
	assert.False(t, IsIndicator("data.tar.gz"))
	assert.False(t, IsIndicator(""))
}

func TestCreateAndExists(t *testing.T) {
	root := t.TempDir()
	markers := NewFS(root)
	day := "2026/08/30"

	assert.False(t, markers.Exists("peer1", day, CollectComplete))
	require.NoError(t, markers.Create("peer1", day, CollectComplete))
	assert.True(t, markers.Exists("peer1", day, CollectComplete))

	// Phases and peers are independent.
	assert.False(t, markers.Exists("peer1", day, StageComplete))
	assert.False(t, markers.Exists("peer2", day, CollectComplete))

	info, err := os.Stat(filepath.Join(root, "peer1", "2026", "08", "30", "cback.collect"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreateWithoutPeer(t *testing.T) {
	root := t.TempDir()
	markers := NewFS(root)

	require.NoError(t, markers.Create("", "2026/08/30", StageComplete))
	assert.True(t, markers.Exists("", "2026/08/30", StageComplete))
	assert.FileExists(t, filepath.Join(root, "2026", "08", "30", "cback.stage"))
}

func TestCreateIsIdempotent(t *testing.T) {
	markers := NewFS(t.TempDir())
	require.NoError(t, markers.Create("peer1", "2026/08/30", StoreComplete))
	require.NoError(t, markers.Create("peer1", "2026/08/30", StoreComplete))
	assert.True(t, markers.Exists("peer1", "2026/08/30", StoreComplete))
}

func TestCreateIn(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2026", "08", "30")
	require.NoError(t, CreateIn(dir, CollectComplete))
	assert.FileExists(t, filepath.Join(dir, "cback.collect"))
}

func TestExistsRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2026", "08", "30", "cback.collect"), 0755))
	assert.False(t, NewFS(root).Exists("", "2026/08/30", CollectComplete))
}
