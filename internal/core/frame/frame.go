// Package frame holds the interval data model of the tracker: the Frame
// record and the Store that owns the ordered frame collection and its
// single-running-frame state machine.
package frame

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Frame is one tracked time interval for a project. A nil End marks the
// currently running frame; at most one frame in a store may be running.
type Frame struct {
	ID      string     `json:"id"`
	Project string     `json:"project"`
	Tags    []string   `json:"tags,omitempty"`
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end"`
}

// Running reports whether the frame has no end time yet.
func (f Frame) Running() bool {
	return f.End == nil
}

// Duration returns the elapsed time of the frame, using now as the end
// for a running frame.
func (f Frame) Duration(now time.Time) time.Duration {
	end := now
	if f.End != nil {
		end = *f.End
	}
	return end.Sub(f.Start)
}

// HasTag reports whether the frame carries the given tag.
func (f Frame) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Identity is the content identity of a frame: project, start, and end.
// Ids are only unique within one store, so cross-store comparison
// (merge dedup) goes through Identity instead.
func (f Frame) Identity() string {
	key := f.Project + "\x00" + f.Start.UTC().Format(time.RFC3339Nano) + "\x00"
	if f.End != nil {
		key += f.End.UTC().Format(time.RFC3339Nano)
	}
	return key
}

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewID generates a frame id: a ULID stamped with t, so ids sort in
// creation order within a store.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
