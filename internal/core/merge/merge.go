// Package merge combines two frame collections from independent store
// files into one conflict-free collection.
package merge

import (
	"errors"
	"sort"
	"time"

	"github.com/tallyhq/tally/internal/core/frame"
)

// ErrMultipleRunningFrames is returned when the merged collection would
// hold more than one running frame. The merge refuses to guess which one
// to keep.
var ErrMultipleRunningFrames = errors.New("both stores contain a running frame")

// Result is the outcome of a merge. Frames is the combined collection in
// start order; Added counts incoming frames that were new to the base;
// Conflicts counts incoming frames that share a start time with a
// differing base frame (both are kept for manual resolution).
type Result struct {
	Frames    []frame.Frame
	Added     int
	Conflicts int
}

// Merge unions base and incoming, deduplicating by content identity
// (project, start, end) since frame ids are only unique within one file.
// Base frames keep their ids; added frames get fresh ids when theirs
// collide with an id already in use. The inputs are never modified.
func Merge(base, incoming []frame.Frame) (Result, error) {
	seen := make(map[string]bool, len(base))
	usedIDs := make(map[string]bool, len(base))
	startKeys := make(map[string]bool, len(base))

	merged := make([]frame.Frame, 0, len(base)+len(incoming))
	for _, f := range base {
		seen[f.Identity()] = true
		usedIDs[f.ID] = true
		startKeys[startKey(f)] = true
		merged = append(merged, f)
	}

	res := Result{}
	for _, f := range incoming {
		if seen[f.Identity()] {
			continue
		}
		seen[f.Identity()] = true
		res.Added++
		if startKeys[startKey(f)] {
			res.Conflicts++
		}
		startKeys[startKey(f)] = true

		if f.ID == "" || usedIDs[f.ID] {
			f.ID = frame.NewID(f.Start)
		}
		usedIDs[f.ID] = true
		merged = append(merged, f)
	}

	running := 0
	for _, f := range merged {
		if f.Running() {
			running++
		}
	}
	if running > 1 {
		return Result{}, ErrMultipleRunningFrames
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	res.Frames = merged
	return res, nil
}

func startKey(f frame.Frame) string {
	return f.Start.UTC().Format(time.RFC3339Nano)
}
