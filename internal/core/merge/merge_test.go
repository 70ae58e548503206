package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/core/frame"
)

var base = time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)

func closed(id, project string, start time.Time, d time.Duration) frame.Frame {
	end := start.Add(d)
	return frame.Frame{ID: id, Project: project, Start: start, End: &end}
}

func running(id, project string, start time.Time) frame.Frame {
	return frame.Frame{ID: id, Project: project, Start: start}
}

func TestMergeWithSelfIsIdempotent(t *testing.T) {
	store := []frame.Frame{
		closed("a", "writing", base, time.Hour),
		closed("b", "reading", base.Add(2*time.Hour), 30*time.Minute),
		running("c", "notes", base.Add(3*time.Hour)),
	}

	result, err := Merge(store, store)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 0, result.Conflicts)
	assert.Equal(t, store, result.Frames)
}

func TestMergeAddsNewFrames(t *testing.T) {
	a := []frame.Frame{closed("1", "writing", base, time.Hour)}
	b := []frame.Frame{
		closed("1", "writing", base, time.Hour), // duplicate by content
		closed("2", "reading", base.Add(2*time.Hour), time.Hour),
	}

	result, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Conflicts)
	require.Len(t, result.Frames, 2)
	assert.Equal(t, "writing", result.Frames[0].Project)
	assert.Equal(t, "reading", result.Frames[1].Project)
}

func TestMergeKeepsConflictingFrames(t *testing.T) {
	a := []frame.Frame{closed("1", "writing", base, time.Hour)}
	b := []frame.Frame{closed("1", "reading", base, 2*time.Hour)}

	result, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Conflicts)
	require.Len(t, result.Frames, 2, "conflicting frames are never dropped")
}

func TestMergeReassignsCollidingIDs(t *testing.T) {
	a := []frame.Frame{closed("dup", "writing", base, time.Hour)}
	b := []frame.Frame{closed("dup", "reading", base.Add(2*time.Hour), time.Hour)}

	result, err := Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Frames, 2)

	assert.Equal(t, "dup", result.Frames[0].ID, "base frames keep their ids")
	assert.NotEqual(t, "dup", result.Frames[1].ID)
	assert.NotEmpty(t, result.Frames[1].ID)
}

func TestMergeAssignsIDToIncomingWithoutOne(t *testing.T) {
	a := []frame.Frame{}
	b := []frame.Frame{closed("", "reading", base, time.Hour)}

	result, err := Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Frames, 1)
	assert.NotEmpty(t, result.Frames[0].ID)
}

func TestMergeFailsOnTwoRunningFrames(t *testing.T) {
	a := []frame.Frame{running("1", "writing", base)}
	b := []frame.Frame{running("2", "reading", base.Add(time.Hour))}

	aBefore := append([]frame.Frame(nil), a...)
	bBefore := append([]frame.Frame(nil), b...)

	result, err := Merge(a, b)
	assert.ErrorIs(t, err, ErrMultipleRunningFrames)
	assert.Empty(t, result.Frames)

	assert.Equal(t, aBefore, a, "inputs are left unmodified")
	assert.Equal(t, bBefore, b)
}

func TestMergeAllowsIdenticalRunningFrame(t *testing.T) {
	shared := running("1", "writing", base)
	a := []frame.Frame{shared}
	b := []frame.Frame{running("other-id", "writing", base)}

	result, err := Merge(a, b)
	require.NoError(t, err, "the same running frame from both files dedups cleanly")
	assert.Equal(t, 0, result.Added)
	require.Len(t, result.Frames, 1)
}

func TestMergeResultIsStartOrdered(t *testing.T) {
	a := []frame.Frame{
		closed("1", "writing", base.Add(4*time.Hour), time.Hour),
		closed("2", "writing", base, time.Hour),
	}
	b := []frame.Frame{
		closed("3", "reading", base.Add(2*time.Hour), time.Hour),
	}

	result, err := Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Frames, 3)
	for i := 1; i < len(result.Frames); i++ {
		assert.False(t, result.Frames[i].Start.Before(result.Frames[i-1].Start))
	}
}
