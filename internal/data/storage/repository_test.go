package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/core/frame"
)

func testFrames() []frame.Frame {
	start := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return []frame.Frame{
		{ID: "one", Project: "writing", Tags: []string{"blog"}, Start: start, End: &end},
		{ID: "two", Project: "notes", Start: start.Add(2 * time.Hour)},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	want := testFrames()
	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "one", got[0].ID)
	assert.Equal(t, []string{"blog"}, got[0].Tags)
	assert.True(t, want[0].End.Equal(*got[0].End))
	assert.Nil(t, got[1].End, "running frame survives the round trip")
	assert.True(t, want[1].Start.Equal(got[1].Start))
}

func TestLoadMissingOrEmptyFileIsEmptyStore(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(repo.Path(), []byte("  \n"), 0644))
	got, err = repo.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCorruptFile(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0644))

	_, err = repo.Load()
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestSaveKeepsBackupOfPreviousContents(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewRepository(dir)
	require.NoError(t, err)

	first := testFrames()[:1]
	require.NoError(t, repo.Save(first))
	firstData, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	require.NoError(t, repo.Save(testFrames()))

	backup, err := os.ReadFile(filepath.Join(dir, "frames.json.bak"))
	require.NoError(t, err)
	assert.Equal(t, firstData, backup)
}

func TestSettingsRedirectDataLocation(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()

	require.NoError(t, SaveSettings(root, Settings{DataLocation: target}))

	repo, err := NewRepository(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, "frames.json"), repo.Path())

	require.NoError(t, repo.Save(testFrames()))
	_, err = os.Stat(filepath.Join(target, "frames.json"))
	assert.NoError(t, err)
}

func TestSettingsRoundTripAndClear(t *testing.T) {
	root := t.TempDir()

	s, err := LoadSettings(root)
	require.NoError(t, err)
	assert.Empty(t, s.DataLocation, "missing settings file yields defaults")

	require.NoError(t, SaveSettings(root, Settings{DataLocation: "/elsewhere"}))
	s, err = LoadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", s.DataLocation)

	require.NoError(t, ClearSettings(root))
	s, err = LoadSettings(root)
	require.NoError(t, err)
	assert.Empty(t, s.DataLocation)
}

func TestLoadFileMissingPath(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreWatcherSeesRewrite(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(testFrames()[:1]))

	watcher, err := NewStoreWatcher(repo.Path())
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, repo.Save(testFrames()))

	select {
	case <-watcher.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("no event after store rewrite")
	}
}
