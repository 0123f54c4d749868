package models

import (
	"testing"
	"time"
)

func TestHabit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   Habit
		wantErr bool
	}{
		{
			name: "valid habit",
			habit: Habit{
				ID:           "test-id",
				Name:         "Morning run",
				ScheduleDays: []string{"Mon", "Wed", "Fri"},
				StartTime:    "07:00",
			},
			wantErr: false,
		},
		{
			name: "missing start time is allowed",
			habit: Habit{
				ID:           "test-id",
				Name:         "Read",
				ScheduleDays: []string{"Sun"},
			},
			wantErr: false,
		},
		{
			name: "empty name",
			habit: Habit{
				ID:        "test-id",
				StartTime: "07:00",
			},
			wantErr: true,
		},
		{
			name: "invalid start time",
			habit: Habit{
				ID:        "test-id",
				Name:      "Morning run",
				StartTime: "25:00",
			},
			wantErr: true,
		},
		{
			name: "invalid schedule day",
			habit: Habit{
				ID:           "test-id",
				Name:         "Morning run",
				ScheduleDays: []string{"Monday"},
				StartTime:    "07:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Habit.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHabit_ScheduledOn(t *testing.T) {
	habit := Habit{
		Name:         "Gym",
		ScheduleDays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		StartTime:    "07:00",
	}

	tests := []struct {
		day  time.Weekday
		want bool
	}{
		{time.Monday, true},
		{time.Friday, true},
		{time.Saturday, false},
		{time.Sunday, false},
	}

	for _, tt := range tests {
		if got := habit.ScheduledOn(tt.day); got != tt.want {
			t.Errorf("ScheduledOn(%v) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestHabit_TargetFor(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 45, 12, 0, time.UTC)

	habit := Habit{Name: "Gym", StartTime: "09:00"}
	target, err := habit.TargetFor(now)
	if err != nil {
		t.Fatalf("TargetFor() error = %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !target.Equal(want) {
		t.Errorf("TargetFor() = %v, want %v", target, want)
	}

	// No start time falls back to the default
	habit = Habit{Name: "Read"}
	target, err = habit.TargetFor(now)
	if err != nil {
		t.Fatalf("TargetFor() error = %v", err)
	}
	if !target.Equal(want) {
		t.Errorf("TargetFor() with default = %v, want %v", target, want)
	}

	// Malformed start time surfaces an error
	habit = Habit{Name: "Broken", StartTime: "9am"}
	if _, err := habit.TargetFor(now); err == nil {
		t.Error("TargetFor() expected error for malformed start time")
	}
}

func TestWeekdayAbbrev(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want string
	}{
		{time.Sunday, "Sun"},
		{time.Monday, "Mon"},
		{time.Saturday, "Sat"},
	}

	for _, tt := range tests {
		if got := WeekdayAbbrev(tt.day); got != tt.want {
			t.Errorf("WeekdayAbbrev(%v) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestWeatherPreferences_Any(t *testing.T) {
	if (WeatherPreferences{}).Any() {
		t.Error("Any() = true for zero preferences")
	}
	if !(WeatherPreferences{AvoidSnow: true}).Any() {
		t.Error("Any() = false with AvoidSnow set")
	}
}
