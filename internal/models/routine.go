package models

import (
	"fmt"
	"time"

	"sidekick/internal/constants"
)

// Subtask is a single step inside a routine.
type Subtask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Routine is an ordered set of subtasks performed together at a single
// scheduled time on a set of repeat days.
type Routine struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RepeatDays []string  `json:"repeatDays"` // weekday abbreviations (Mon..Sun)
	Time       string    `json:"time"`       // HH:MM format
	Tasks      []Subtask `json:"tasks"`
	Completed  bool      `json:"completed"`
}

func (r *Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine name cannot be empty")
	}
	if r.Time == "" {
		return fmt.Errorf("routine time cannot be empty")
	}
	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	for _, day := range r.RepeatDays {
		if !IsWeekdayAbbrev(day) {
			return fmt.Errorf("invalid repeat day: %s", day)
		}
	}
	return nil
}

// ScheduledOn reports whether the routine repeats on the given weekday.
func (r *Routine) ScheduledOn(day time.Weekday) bool {
	return containsWeekday(r.RepeatDays, day)
}

// TargetFor reconstructs the routine's target instant for the day of now.
func (r *Routine) TargetFor(now time.Time) (time.Time, error) {
	return atTimeOfDay(now, r.Time)
}

// PendingTasks returns the number of incomplete subtasks.
func (r *Routine) PendingTasks() int {
	pending := 0
	for _, t := range r.Tasks {
		if !t.Completed {
			pending++
		}
	}
	return pending
}
