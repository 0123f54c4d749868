package reminder

import (
	"context"
	"strings"
	"testing"
	"time"

	"sidekick/internal/models"
	"sidekick/internal/notify"
)

func TestRoutineDriver_Bands(t *testing.T) {
	routine := models.Routine{
		ID:         "r1",
		Name:       "Morning Routine",
		RepeatDays: weekdays(),
		Time:       "09:00",
		Tasks: []models.Subtask{
			{ID: "t1", Name: "Stretch"},
			{ID: "t2", Name: "Journal"},
		},
	}

	tests := []struct {
		name           string
		now            time.Time
		wantCount      int
		wantTitle      string
		wantMessage    string
		wantPersistent bool
	}{
		{"five minutes before", monday("08:55"), 1, "Routine Starting Soon", "starts in 5 minutes", false},
		{"six minutes before", monday("08:54"), 0, "", "", false},
		{"on time", monday("09:00"), 1, "Time to Move", "You have 2 tasks to complete.", true},
		{"five and a half minutes late", monday("09:05:30"), 1, "Come On", "6 minutes ago", true},
		{"ten minutes late still nags", monday("09:10"), 1, "Come On", "10 minutes ago", true},
		{"twenty-two minutes late", monday("09:22"), 1, "SERIOUSLY", "22 MINUTES LATE", true},
		{"past the last band", monday("09:25"), 0, "", "", false},
		{"between upcoming and due", monday("08:57"), 0, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := notify.NewSink(time.Hour)
			driver := NewRoutineDriver(sink, func() []models.Routine {
				return []models.Routine{routine}
			}, testOptions(tt.now))

			driver.CheckOnce(context.Background())

			list := sink.List()
			if len(list) != tt.wantCount {
				t.Fatalf("got %d notifications, want %d", len(list), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			if !strings.Contains(list[0].Title, tt.wantTitle) {
				t.Errorf("title = %q, want it to contain %q", list[0].Title, tt.wantTitle)
			}
			if !strings.Contains(list[0].Message, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", list[0].Message, tt.wantMessage)
			}
			if list[0].Persistent != tt.wantPersistent {
				t.Errorf("persistent = %v, want %v", list[0].Persistent, tt.wantPersistent)
			}
		})
	}
}

func TestRoutineDriver_NoTaskCountWhenEmpty(t *testing.T) {
	routine := models.Routine{Name: "Wind Down", RepeatDays: weekdays(), Time: "09:00"}

	sink := notify.NewSink(time.Hour)
	driver := NewRoutineDriver(sink, func() []models.Routine {
		return []models.Routine{routine}
	}, testOptions(monday("09:00")))

	driver.CheckOnce(context.Background())
	list := sink.List()
	if len(list) != 1 {
		t.Fatalf("got %d notifications, want 1", len(list))
	}
	if strings.Contains(list[0].Message, "tasks to complete") {
		t.Errorf("message %q mentions tasks for a task-less routine", list[0].Message)
	}
}

func TestRoutineDriver_SkipsCompletedInEveryBand(t *testing.T) {
	routine := models.Routine{Name: "Morning Routine", RepeatDays: weekdays(), Time: "09:00", Completed: true}

	// Completed routines are silent even deep in the overdue bands.
	for _, now := range []time.Time{monday("08:55"), monday("09:00"), monday("09:10"), monday("09:22")} {
		sink := notify.NewSink(time.Hour)
		driver := NewRoutineDriver(sink, func() []models.Routine {
			return []models.Routine{routine}
		}, testOptions(now))

		driver.CheckOnce(context.Background())
		if got := sink.Len(); got != 0 {
			t.Errorf("at %s: got %d notifications for a completed routine, want 0", now.Format("15:04"), got)
		}
	}
}

func TestRoutineDriver_SkipsUnscheduledDay(t *testing.T) {
	routine := models.Routine{Name: "Morning Routine", RepeatDays: []string{"Mon"}, Time: "09:00"}
	tuesday := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	sink := notify.NewSink(time.Hour)
	driver := NewRoutineDriver(sink, func() []models.Routine {
		return []models.Routine{routine}
	}, testOptions(tuesday))

	driver.CheckOnce(context.Background())
	if got := sink.Len(); got != 0 {
		t.Errorf("got %d notifications on an unscheduled day, want 0", got)
	}
}

func TestRoutineDriver_SkipsMalformedTime(t *testing.T) {
	routines := []models.Routine{
		{Name: "Broken", RepeatDays: weekdays(), Time: "later"},
		{Name: "Morning Routine", RepeatDays: weekdays(), Time: "09:00"},
	}

	sink := notify.NewSink(time.Hour)
	driver := NewRoutineDriver(sink, func() []models.Routine {
		return routines
	}, testOptions(monday("09:00")))

	driver.CheckOnce(context.Background())
	list := sink.List()
	if len(list) != 1 {
		t.Fatalf("got %d notifications, want 1", len(list))
	}
	if !strings.Contains(list[0].Message, "Morning Routine") {
		t.Errorf("notification is for the wrong routine: %q", list[0].Message)
	}
}
