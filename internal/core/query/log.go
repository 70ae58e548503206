package query

import (
	"sort"
	"time"

	"github.com/tallyhq/tally/internal/core/frame"
)

// LoggedFrame is a frame annotated with its elapsed duration at the time
// the log was taken.
type LoggedFrame struct {
	frame.Frame
	Elapsed time.Duration `json:"elapsed"`
}

// DayGroup collects the frames started on one local calendar day,
// with the day's total tracked time.
type DayGroup struct {
	Day    time.Time     `json:"day"`
	Frames []LoggedFrame `json:"frames"`
	Total  time.Duration `json:"total"`
}

// Log annotates all frames with their elapsed duration, start-ascending.
func Log(frames []frame.Frame, now time.Time) []LoggedFrame {
	out := make([]LoggedFrame, 0, len(frames))
	for _, f := range frames {
		out = append(out, LoggedFrame{Frame: f, Elapsed: f.Duration(now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// LogByDay groups the log by the calendar day each frame started on, in
// loc, with per-day totals. Days are ascending; frames inside a day keep
// start order.
func LogByDay(frames []frame.Frame, now time.Time, loc *time.Location) []DayGroup {
	byDay := make(map[time.Time]*DayGroup)
	order := make([]time.Time, 0)

	for _, lf := range Log(frames, now) {
		start := lf.Start.In(loc)
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		g, ok := byDay[day]
		if !ok {
			g = &DayGroup{Day: day}
			byDay[day] = g
			order = append(order, day)
		}
		g.Frames = append(g.Frames, lf)
		g.Total += lf.Elapsed
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	groups := make([]DayGroup, 0, len(order))
	for _, day := range order {
		groups = append(groups, *byDay[day])
	}
	return groups
}
