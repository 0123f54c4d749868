package reminder

import (
	"context"
	"fmt"

	"sidekick/internal/constants"
	"sidekick/internal/logger"
	"sidekick/internal/models"
	"sidekick/internal/notify"
	"sidekick/internal/timewindow"
	"sidekick/internal/weather"
)

// HabitDriver re-evaluates the habit collection once per interval. Habits
// with weather preferences consult the gate first: a weather alert replaces
// the time-based reminder and ends the pass.
type HabitDriver struct {
	sink       *notify.Sink
	gate       WeatherService
	source     func() []models.Habit
	coords     *Coordinates
	classifier *timewindow.Classifier
	opts       Options
}

// NewHabitDriver wires a habit driver. source returns the latest habit
// collection; coords may be nil when the user's location is unknown, which
// disables weather gating.
func NewHabitDriver(sink *notify.Sink, gate WeatherService, source func() []models.Habit, coords *Coordinates, opts Options) *HabitDriver {
	opts = opts.withDefaults(timewindow.DefaultBands())
	return &HabitDriver{
		sink:       sink,
		gate:       gate,
		source:     source,
		coords:     coords,
		classifier: timewindow.New(opts.Bands),
		opts:       opts,
	}
}

// Run blocks until the context is cancelled.
func (d *HabitDriver) Run(ctx context.Context) {
	runLoop(ctx, d.opts.Interval, d.CheckOnce)
}

// CheckOnce performs a single pass over the habit collection.
func (d *HabitDriver) CheckOnce(ctx context.Context) {
	now := d.opts.Clock.Now().In(d.opts.Location)
	today := now.Weekday()

	for _, habit := range d.source() {
		if !habit.ScheduledOn(today) {
			continue
		}
		if habit.Completed {
			continue
		}

		target, err := habit.TargetFor(now)
		if err != nil {
			logger.Debug("Skipping habit with malformed start time", "habit", habit.Name, "error", err)
			continue
		}

		// Weather objections pre-empt the schedule nag. The original
		// behavior ends the whole pass on the first bad-weather habit,
		// not just this entity's check.
		if habit.WeatherPreferences != nil && habit.WeatherPreferences.Any() && d.coords != nil {
			snapshot := d.gate.Current(ctx, d.coords.Latitude, d.coords.Longitude)
			if alerts := weather.AlertsFor(snapshot, *habit.WeatherPreferences); len(alerts) > 0 {
				for _, alert := range alerts {
					d.sink.Add(models.Notification{
						Kind:       alert.Kind(),
						Title:      alert.Title,
						Message:    alert.Message,
						Persistent: true,
					})
				}
				return
			}
		}

		d.emit(habit, d.classifier.Classify(now, target))
	}
}

func (d *HabitDriver) emit(habit models.Habit, window timewindow.Window) {
	startTime := habit.StartTime
	if startTime == "" {
		startTime = constants.DefaultHabitStartTime
	}

	// The alert bands stay up until dismissed; the advance notice fades on
	// its own.
	switch window {
	case timewindow.Upcoming:
		d.sink.Add(models.Notification{
			Kind:    models.KindInfo,
			Title:   "⏰ Habit Time Coming Up",
			Message: fmt.Sprintf("Boss, %s starts in 15 minutes. Prepare yourself!", habit.Name),
		})
	case timewindow.DueNow:
		d.sink.Add(models.Notification{
			Kind:       models.KindAlert,
			Title:      "🎯 Time For Your Habit!",
			Message:    fmt.Sprintf("Boss, it's time for %s (%s). Have you started? Don't skip this!", habit.Name, startTime),
			Persistent: true,
		})
	case timewindow.OverdueSoon:
		d.sink.Add(models.Notification{
			Kind:       models.KindAlert,
			Title:      "⏳ Boss, Come On!",
			Message:    fmt.Sprintf("%s was supposed to start 5 minutes ago. You better get moving or mark it done.", habit.Name),
			Persistent: true,
		})
	case timewindow.OverdueLate:
		d.sink.Add(models.Notification{
			Kind:       models.KindAlert,
			Title:      "🔥 SERIOUSLY?!",
			Message:    fmt.Sprintf("%s is NOW 30 MINUTES LATE! This is not like you. Complete it right now or remove it.", habit.Name),
			Persistent: true,
		})
	}
}
