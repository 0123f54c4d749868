package reminder

import (
	"context"
	"fmt"
	"math"

	"sidekick/internal/logger"
	"sidekick/internal/models"
	"sidekick/internal/notify"
	"sidekick/internal/timewindow"
)

// RoutineDriver re-evaluates the routine collection once per interval.
// Routines use wider overdue bands than habits, so a late routine nags on
// every tick while it stays inside the band.
type RoutineDriver struct {
	sink       *notify.Sink
	source     func() []models.Routine
	classifier *timewindow.Classifier
	opts       Options
}

// NewRoutineDriver wires a routine driver over the given source.
func NewRoutineDriver(sink *notify.Sink, source func() []models.Routine, opts Options) *RoutineDriver {
	opts = opts.withDefaults(timewindow.RoutineBands())
	return &RoutineDriver{
		sink:       sink,
		source:     source,
		classifier: timewindow.New(opts.Bands),
		opts:       opts,
	}
}

// Run blocks until the context is cancelled.
func (d *RoutineDriver) Run(ctx context.Context) {
	runLoop(ctx, d.opts.Interval, d.CheckOnce)
}

// CheckOnce performs a single pass over the routine collection.
func (d *RoutineDriver) CheckOnce(ctx context.Context) {
	now := d.opts.Clock.Now().In(d.opts.Location)
	today := now.Weekday()

	for _, routine := range d.source() {
		if !routine.ScheduledOn(today) {
			continue
		}
		if routine.Completed {
			continue
		}

		target, err := routine.TargetFor(now)
		if err != nil {
			logger.Debug("Skipping routine with malformed time", "routine", routine.Name, "error", err)
			continue
		}

		minutesLate := int(math.Round(timewindow.Offset(now, target).Minutes()))

		// The alert bands stay up until dismissed; the advance notice
		// fades on its own.
		switch d.classifier.Classify(now, target) {
		case timewindow.Upcoming:
			d.sink.Add(models.Notification{
				Kind:    models.KindInfo,
				Title:   "⏰ Routine Starting Soon",
				Message: fmt.Sprintf("%s starts in 5 minutes. Get ready, boss!", routine.Name),
			})
		case timewindow.DueNow:
			message := fmt.Sprintf("%s is happening NOW. Don't forget!", routine.Name)
			if len(routine.Tasks) > 0 {
				message += fmt.Sprintf(" You have %d tasks to complete.", len(routine.Tasks))
			}
			d.sink.Add(models.Notification{
				Kind:       models.KindAlert,
				Title:      "🚀 Time to Move, Boss!",
				Message:    message,
				Persistent: true,
			})
		case timewindow.OverdueSoon:
			d.sink.Add(models.Notification{
				Kind:       models.KindAlert,
				Title:      "⏳ Boss, Come On!",
				Message:    fmt.Sprintf("%s was supposed to start %d minutes ago. Don't let me down now.", routine.Name, minutesLate),
				Persistent: true,
			})
		case timewindow.OverdueLate:
			d.sink.Add(models.Notification{
				Kind:       models.KindAlert,
				Title:      "🔥 SERIOUSLY?!",
				Message:    fmt.Sprintf("%s is NOW %d MINUTES LATE! You're slipping. Complete it or remove it.", routine.Name, minutesLate),
				Persistent: true,
			})
		}
	}
}
