// Package query filters and aggregates frames: half-open report windows,
// per-project totals, and the chronological log.
package query

import (
	"errors"
	"time"

	"github.com/tallyhq/tally/internal/core/frame"
)

// ErrConflictingWindow is returned when explicit from/to dates are
// combined with granularity flags.
var ErrConflictingWindow = errors.New("cannot combine --from/--to with day/week/month/year flags")

// Granularity unit sizes. Months and years are fixed week multiples,
// matching the aggregate-for-the-period semantics rather than calendar
// arithmetic.
const (
	unitDay   = 24 * time.Hour
	unitWeek  = 7 * unitDay
	unitMonth = 4 * unitWeek
	unitYear  = 52 * unitWeek
)

// Window is a half-open time range [From, To) plus optional project and
// tag filters. Transient; never persisted.
type Window struct {
	From    time.Time
	To      time.Time
	Project string
	Tags    []string
}

// WindowSpec is the raw report request: repeatable granularity flag
// counts and/or explicit bounds.
type WindowSpec struct {
	Days   int
	Weeks  int
	Months int
	Years  int

	From *time.Time
	To   *time.Time

	Project string
	Tags    []string
}

// NewWindow computes the report window for spec at the instant now.
//
// Explicit From/To take precedence and must not be combined with
// granularity flags. Each repeated granularity flag widens a single
// cumulative window ending at now. With neither, the window runs from
// the start of the current week (Monday 00:00 in now's location).
func NewWindow(spec WindowSpec, now time.Time) (Window, error) {
	w := Window{Project: spec.Project, Tags: spec.Tags}

	granular := spec.Days > 0 || spec.Weeks > 0 || spec.Months > 0 || spec.Years > 0
	explicit := spec.From != nil || spec.To != nil

	switch {
	case granular && explicit:
		return Window{}, ErrConflictingWindow
	case explicit:
		w.To = now
		if spec.To != nil {
			w.To = *spec.To
		}
		if spec.From != nil {
			w.From = *spec.From
		}
	case granular:
		span := time.Duration(spec.Days)*unitDay +
			time.Duration(spec.Weeks)*unitWeek +
			time.Duration(spec.Months)*unitMonth +
			time.Duration(spec.Years)*unitYear
		w.From = now.Add(-span)
		w.To = now
	default:
		w.From = startOfWeek(now)
		w.To = now
	}

	return w, nil
}

// Contains reports whether the frame belongs to the window: its start
// lies in [From, To) and it passes the project and tag filters. A frame
// matches the tag filter when it carries at least one requested tag.
func (w Window) Contains(f frame.Frame) bool {
	if f.Start.Before(w.From) || !f.Start.Before(w.To) {
		return false
	}
	if w.Project != "" && f.Project != w.Project {
		return false
	}
	if len(w.Tags) > 0 {
		matched := false
		for _, tag := range w.Tags {
			if f.HasTag(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// startOfWeek returns Monday 00:00 of the week containing t, in t's
// location.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
