package frame

import (
	"sort"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/util"
)

// Store is the ordered collection of all frames for one tracker file.
// Frames are kept in non-decreasing start order. The store mutates only
// in memory; loading and persisting the collection is the caller's job.
//
// Every operation validates before it mutates, so a failed call leaves
// the store exactly as it was.
type Store struct {
	frames []Frame
	clock  util.Clock
}

// NewStore wraps a loaded frame sequence. The frames are re-sorted by
// start so a hand-edited file cannot break the ordering invariant.
func NewStore(frames []Frame, clock util.Clock) *Store {
	s := &Store{
		frames: append([]Frame(nil), frames...),
		clock:  clock,
	}
	s.sort()
	return s
}

// Frames returns the stored frames in start order. The caller must not
// mutate the returned slice.
func (s *Store) Frames() []Frame {
	return s.frames
}

// Len returns the number of stored frames.
func (s *Store) Len() int {
	return len(s.frames)
}

// Current returns the single running frame, if any.
func (s *Store) Current() (Frame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Running() {
			return s.frames[i], true
		}
	}
	return Frame{}, false
}

// Last returns the frame with the greatest start, regardless of running
// state. Ties on start resolve to the greatest id, which for ULID ids is
// the latest-created frame.
func (s *Store) Last() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	last := s.frames[len(s.frames)-1]
	for i := len(s.frames) - 2; i >= 0; i-- {
		f := s.frames[i]
		if f.Start.Before(last.Start) {
			break
		}
		if f.ID > last.ID {
			last = f
		}
	}
	return last, true
}

// Start begins tracking a new frame for project at the current time.
// It fails with ErrAlreadyRunning while another frame is open; callers
// wanting replace semantics must Stop first.
func (s *Store) Start(project string, tags []string) (Frame, error) {
	if strings.TrimSpace(project) == "" {
		return Frame{}, ErrEmptyProjectName
	}
	if _, running := s.Current(); running {
		return Frame{}, ErrAlreadyRunning
	}

	now := s.clock.Now()
	f := Frame{
		ID:      NewID(now),
		Project: project,
		Tags:    normalizeTags(tags),
		Start:   now,
	}
	s.frames = append(s.frames, f)
	s.sort()
	return f, nil
}

// Stop closes the running frame at the current time.
func (s *Store) Stop() (Frame, error) {
	idx := s.currentIndex()
	if idx < 0 {
		return Frame{}, ErrNoRunningProject
	}
	end := s.clock.Now()
	s.frames[idx].End = &end
	return s.frames[idx], nil
}

// Cancel deletes the running frame entirely and returns the frame it
// removed.
func (s *Store) Cancel() (Frame, error) {
	idx := s.currentIndex()
	if idx < 0 {
		return Frame{}, ErrNoRunningProject
	}
	canceled := s.frames[idx]
	s.frames = append(s.frames[:idx], s.frames[idx+1:]...)
	return canceled, nil
}

// Restart starts a new frame with the project and tags of the last
// recorded frame.
func (s *Store) Restart() (Frame, error) {
	if _, running := s.Current(); running {
		return Frame{}, ErrAlreadyRunning
	}
	last, ok := s.Last()
	if !ok {
		return Frame{}, ErrNoPriorProject
	}
	return s.Start(last.Project, last.Tags)
}

// Amend renames the running frame, or the last frame when nothing is
// running.
func (s *Store) Amend(newName string) (Frame, error) {
	if strings.TrimSpace(newName) == "" {
		return Frame{}, ErrEmptyProjectName
	}
	idx := s.targetIndex()
	if idx < 0 {
		return Frame{}, ErrEmptyStore
	}
	s.frames[idx].Project = newName
	return s.frames[idx], nil
}

// Delete removes every frame of the given project, including a running
// one, and returns how many frames were removed. An unknown project is
// a no-op, not an error.
func (s *Store) Delete(project string) int {
	kept := s.frames[:0]
	removed := 0
	for _, f := range s.frames {
		if f.Project == project {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.frames = kept
	return removed
}

// Selector identifies the frame an Edit targets. The zero Selector picks
// the running frame if one exists, otherwise the last frame. ID targets
// a frame by id; Position (with HasPosition) targets the n-th frame in
// start order, counting from zero.
type Selector struct {
	ID          string
	Position    int
	HasPosition bool
}

// Changes is a partial update applied by Edit. Nil fields are left
// untouched.
type Changes struct {
	Project *string
	Start   *time.Time
	End     *time.Time
}

// Edit applies changes to the selected frame. All frame invariants are
// re-validated before anything is written back, and the store is
// re-sorted when a new start moves the frame out of order.
func (s *Store) Edit(sel Selector, ch Changes) (Frame, error) {
	idx, err := s.selectIndex(sel)
	if err != nil {
		return Frame{}, err
	}

	edited := s.frames[idx]
	if ch.Project != nil {
		if strings.TrimSpace(*ch.Project) == "" {
			return Frame{}, ErrEmptyProjectName
		}
		edited.Project = *ch.Project
	}
	if ch.Start != nil {
		edited.Start = *ch.Start
	}
	if ch.End != nil {
		end := *ch.End
		edited.End = &end
	}
	if edited.End != nil && edited.End.Before(edited.Start) {
		return Frame{}, ErrInvalidRange
	}

	s.frames[idx] = edited
	s.sort()
	return edited, nil
}

func (s *Store) selectIndex(sel Selector) (int, error) {
	switch {
	case sel.ID != "":
		for i, f := range s.frames {
			if f.ID == sel.ID {
				return i, nil
			}
		}
		return -1, ErrFrameNotFound
	case sel.HasPosition:
		if sel.Position < 0 || sel.Position >= len(s.frames) {
			return -1, ErrFrameNotFound
		}
		return sel.Position, nil
	default:
		idx := s.targetIndex()
		if idx < 0 {
			return -1, ErrEmptyStore
		}
		return idx, nil
	}
}

// targetIndex is the default mutation target: the running frame if one
// exists, otherwise the last frame, or -1 for an empty store.
func (s *Store) targetIndex() int {
	if idx := s.currentIndex(); idx >= 0 {
		return idx
	}
	last, ok := s.Last()
	if !ok {
		return -1
	}
	for i, f := range s.frames {
		if f.ID == last.ID {
			return i
		}
	}
	return -1
}

func (s *Store) currentIndex() int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Running() {
			return i
		}
	}
	return -1
}

func (s *Store) sort() {
	sort.SliceStable(s.frames, func(i, j int) bool {
		return s.frames[i].Start.Before(s.frames[j].Start)
	})
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
