package util

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Core operations take a Clock instead of
// calling time.Now so tests can run against fixed instants.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock is the wall clock in a configured timezone.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a system clock for the given timezone name.
// "Local" or the empty string select the local timezone.
func NewSystemClock(timezone string) (*SystemClock, error) {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}
	return &SystemClock{loc: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *SystemClock) Location() *time.Location {
	return c.loc
}

// FixedClock reports a fixed instant until advanced. Test use only.
type FixedClock struct {
	Current time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{Current: t}
}

func (c *FixedClock) Now() time.Time {
	return c.Current
}

func (c *FixedClock) Location() *time.Location {
	return c.Current.Location()
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.Current = c.Current.Add(d)
	return c.Current
}
