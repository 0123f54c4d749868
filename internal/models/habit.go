package models

import (
	"fmt"
	"time"

	"sidekick/internal/constants"
)

// WeatherPreferences are the conditions under which a habit should not be
// performed. All three flags are independent.
type WeatherPreferences struct {
	AvoidRain   bool `json:"avoidRain"`
	AvoidHotSun bool `json:"avoidHotSun"`
	AvoidSnow   bool `json:"avoidSnow"`
}

// Any reports whether at least one avoidance flag is set.
func (p WeatherPreferences) Any() bool {
	return p.AvoidRain || p.AvoidHotSun || p.AvoidSnow
}

// Habit is a recurring daily activity scheduled on a set of weekdays at a
// fixed wall-clock time. The backend owns persistence; the reminder engine
// only reads these fields.
type Habit struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	ScheduleDays       []string            `json:"scheduleDays"` // weekday abbreviations (Mon..Sun)
	StartTime          string              `json:"startTime"`    // HH:MM format
	Completed          bool                `json:"completed"`
	Progress           int                 `json:"progress,omitempty"`
	WeatherPreferences *WeatherPreferences `json:"weatherPreferences,omitempty"`
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if h.StartTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.StartTime); err != nil {
			return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
		}
	}
	for _, day := range h.ScheduleDays {
		if !IsWeekdayAbbrev(day) {
			return fmt.Errorf("invalid schedule day: %s", day)
		}
	}
	return nil
}

// ScheduledOn reports whether the habit is scheduled on the given weekday.
func (h *Habit) ScheduledOn(day time.Weekday) bool {
	return containsWeekday(h.ScheduleDays, day)
}

// TargetFor reconstructs the habit's target instant for the day of now by
// combining now's date with the stored time-of-day. Habits without a start
// time fall back to the default.
func (h *Habit) TargetFor(now time.Time) (time.Time, error) {
	startTime := h.StartTime
	if startTime == "" {
		startTime = constants.DefaultHabitStartTime
	}
	return atTimeOfDay(now, startTime)
}

// WeekdayAbbrev returns the three-letter abbreviation used by the backend
// for a weekday (Mon, Tue, ...).
func WeekdayAbbrev(day time.Weekday) string {
	return day.String()[:3]
}

// IsWeekdayAbbrev reports whether s is a valid weekday abbreviation.
func IsWeekdayAbbrev(s string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if WeekdayAbbrev(d) == s {
			return true
		}
	}
	return false
}

func containsWeekday(days []string, day time.Weekday) bool {
	abbrev := WeekdayAbbrev(day)
	for _, d := range days {
		if d == abbrev {
			return true
		}
	}
	return false
}

// atTimeOfDay combines now's date with an HH:MM time-of-day in now's location.
func atTimeOfDay(now time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
