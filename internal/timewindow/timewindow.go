// Package timewindow classifies the offset between the current time and a
// reminder target into named trigger windows. Each window is a half-open
// interval over now - target, so a positive offset means the target is in
// the past. Bands are evaluated in order and the first match wins; a caller
// polling once per minute observes a one-minute-wide band exactly once per
// occurrence.
package timewindow

import "time"

// Window names the trigger category for a reminder check.
type Window string

const (
	// None means no reminder should fire for this check.
	None Window = "none"
	// Upcoming fires shortly before the target.
	Upcoming Window = "upcoming"
	// DueNow fires when the target time arrives.
	DueNow Window = "due_now"
	// OverdueSoon is the first late nag.
	OverdueSoon Window = "overdue_soon"
	// OverdueLate is the heavy late nag.
	OverdueLate Window = "overdue_late"
)

// Band maps a half-open offset interval [From, To) to a window.
type Band struct {
	Window Window
	From   time.Duration // inclusive
	To     time.Duration // exclusive
}

// Classifier holds an ordered band list. The zero value classifies
// everything as None.
type Classifier struct {
	bands []Band
}

// New creates a classifier over the given ordered bands.
func New(bands []Band) *Classifier {
	return &Classifier{bands: bands}
}

// Classify returns the window for the offset now - target. It is a pure
// function of its arguments.
func (c *Classifier) Classify(now, target time.Time) Window {
	diff := now.Sub(target)
	for _, b := range c.bands {
		if diff >= b.From && diff < b.To {
			return b.Window
		}
	}
	return None
}

// Offset returns now - target, positive when the target is overdue.
func Offset(now, target time.Time) time.Duration {
	return now.Sub(target)
}

// DefaultBands are the habit and todo trigger bands: one-minute-wide edges so
// a minute-cadence poll fires each reminder once.
func DefaultBands() []Band {
	return []Band{
		{Window: Upcoming, From: -15 * time.Minute, To: -14 * time.Minute},
		{Window: DueNow, From: 0, To: time.Minute},
		{Window: OverdueSoon, From: 5 * time.Minute, To: 6 * time.Minute},
		{Window: OverdueLate, From: 30 * time.Minute, To: 31 * time.Minute},
	}
}

// RoutineBands differ from the default bands: the upcoming band sits closer
// to the target and the overdue bands are wide, so a routine nags every
// minute while it stays late.
func RoutineBands() []Band {
	return []Band{
		{Window: Upcoming, From: -5 * time.Minute, To: -4 * time.Minute},
		{Window: DueNow, From: 0, To: time.Minute},
		{Window: OverdueSoon, From: 5 * time.Minute, To: 20 * time.Minute},
		{Window: OverdueLate, From: 20 * time.Minute, To: 25 * time.Minute},
	}
}
