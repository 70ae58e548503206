package query

import (
	"time"

	"github.com/tallyhq/tally/internal/core/frame"
)

// ProjectTotal is the aggregate tracked time of one project inside a
// window.
type ProjectTotal struct {
	Project string        `json:"project"`
	Total   time.Duration `json:"total"`
}

// Report sums the elapsed durations of the frames inside w, grouped by
// project. A frame contributes its full duration when its start falls in
// the window; there is no sub-interval clipping. Running frames are
// measured up to now.
//
// Projects appear in first-seen (frame start) order, which makes the
// output deterministic for a fixed store and clock. Projects with a zero
// total are omitted.
func Report(frames []frame.Frame, w Window, now time.Time) []ProjectTotal {
	index := make(map[string]int)
	totals := make([]ProjectTotal, 0)

	for _, f := range frames {
		if !w.Contains(f) {
			continue
		}
		i, ok := index[f.Project]
		if !ok {
			i = len(totals)
			index[f.Project] = i
			totals = append(totals, ProjectTotal{Project: f.Project})
		}
		totals[i].Total += f.Duration(now)
	}

	kept := totals[:0]
	for _, t := range totals {
		if t.Total > 0 {
			kept = append(kept, t)
		}
	}
	return kept
}
