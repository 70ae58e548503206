package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag-backed state between invocations; cobra keeps
// flag variables across Execute calls.
func resetFlags() {
	startTags = nil
	statusSimple = false
	statusTime = false
	statusWatch = false
	logOutput = "table"
	reportDays = 0
	reportWeeks = 0
	reportMonths = 0
	reportYears = 0
	reportFrom = ""
	reportTo = ""
	reportProject = ""
	reportTags = nil
	reportOutput = "table"
	editStart = ""
	editEnd = ""
	editProject = ""
	editID = ""
	mergeDryRun = false
	settingsDataDir = ""
	settingsClear = false
}

func runTally(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--data-dir", dir, "--timezone", "UTC"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTrackingLifecycle(t *testing.T) {
	dir := t.TempDir()

	// Nothing running yet.
	_, err := runTally(t, dir, "status")
	require.Error(t, err)

	out, err := runTally(t, dir, "start", "writing", "--tag", "blog")
	require.NoError(t, err)
	assert.Contains(t, out, "Started tracking project writing")

	// Starting again while tracking fails with a hint.
	_, err = runTally(t, dir, "start", "reading")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already being tracked")
	assert.Contains(t, err.Error(), "tally stop")

	out, err = runTally(t, dir, "status", "--simple")
	require.NoError(t, err)
	assert.Equal(t, "writing\n", out)

	out, err = runTally(t, dir, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped project writing")

	// Pin the frame to a known interval so report totals are exact.
	out, err = runTally(t, dir, "edit",
		"--start", "2000-01-02 10:00", "--end", "2000-01-02 11:00")
	require.NoError(t, err)
	assert.Contains(t, out, "writing")

	out, err = runTally(t, dir, "amend", "editing")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed tracking project writing -> editing")

	out, err = runTally(t, dir, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunday 2 January 2000")
	assert.Contains(t, out, "editing")
	assert.Contains(t, out, "1h  0m  0s")
	assert.Contains(t, out, "[blog]")

	out, err = runTally(t, dir, "report", "--from", "2000-01-01", "--to", "2000-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "editing")
	assert.Contains(t, out, "1h  0m  0s")

	// Tag filter that matches nothing.
	out, err = runTally(t, dir, "report",
		"--from", "2000-01-01", "--to", "2000-01-03", "--tag", "nope")
	require.NoError(t, err)
	assert.NotContains(t, out, "editing")

	// Granularity flags cannot be combined with explicit dates.
	_, err = runTally(t, dir, "report", "--day", "--from", "2000-01-01")
	require.Error(t, err)

	out, err = runTally(t, dir, "restart")
	require.NoError(t, err)
	assert.Contains(t, out, "Tracking last running project: editing")

	out, err = runTally(t, dir, "cancel")
	require.NoError(t, err)
	assert.Contains(t, out, "Canceled project editing")

	out, err = runTally(t, dir, "delete", "editing")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project editing (1 frames)")

	out, err = runTally(t, dir, "delete", "editing")
	require.NoError(t, err, "deleting an absent project is not an error")
	assert.Contains(t, out, "No frames for project editing")
}

func TestRestartOnEmptyStoreFails(t *testing.T) {
	_, err := runTally(t, t.TempDir(), "restart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prior project")
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := runTally(t, dir, "start", "local")
	require.NoError(t, err)
	_, err = runTally(t, dir, "stop")
	require.NoError(t, err)

	incoming := filepath.Join(t.TempDir(), "laptop.json")
	payload := `[{"id":"x","project":"imported","start":"2001-01-01T10:00:00Z","end":"2001-01-01T11:00:00Z"}]`
	require.NoError(t, os.WriteFile(incoming, []byte(payload), 0644))

	out, err := runTally(t, dir, "merge", "--dry-run", incoming)
	require.NoError(t, err)
	assert.Contains(t, out, "Would merge")
	assert.Contains(t, out, "1 frames added, 0 conflicts")

	// Dry run persisted nothing.
	out, err = runTally(t, dir, "report", "--from", "2001-01-01", "--to", "2001-01-02")
	require.NoError(t, err)
	assert.NotContains(t, out, "imported")

	out, err = runTally(t, dir, "merge", incoming)
	require.NoError(t, err)
	assert.Contains(t, out, "Merged")

	out, err = runTally(t, dir, "report", "--from", "2001-01-01", "--to", "2001-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "imported")
	assert.Contains(t, out, "1h  0m  0s")

	// Merging the same file again changes nothing.
	out, err = runTally(t, dir, "merge", incoming)
	require.NoError(t, err)
	assert.Contains(t, out, "0 frames added, 0 conflicts")
}

func TestSettingsCommand(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()

	_, err := runTally(t, dir, "start", "writing")
	require.NoError(t, err)
	_, err = runTally(t, dir, "stop")
	require.NoError(t, err)

	out, err := runTally(t, dir, "settings", "--set-data-dir", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	_, err = os.Stat(filepath.Join(target, "frames.json"))
	assert.NoError(t, err, "frames were carried to the new location")

	out, err = runTally(t, dir, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "writing", "commands follow the redirected location")
}
