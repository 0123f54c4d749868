package reminder

import (
	"context"
	"fmt"

	"sidekick/internal/models"
	"sidekick/internal/notify"
	"sidekick/internal/timewindow"
)

// TodoDriver re-evaluates the todo collection once per interval. Todos carry
// absolute timestamps, so the target needs no daily reconstruction.
// High-risk todos get a weather check folded into the advance reminder.
type TodoDriver struct {
	sink       *notify.Sink
	gate       WeatherService
	source     func() []models.Todo
	coords     *Coordinates
	classifier *timewindow.Classifier
	opts       Options
}

// NewTodoDriver wires a todo driver. coords may be nil, which disables the
// high-risk weather fragment.
func NewTodoDriver(sink *notify.Sink, gate WeatherService, source func() []models.Todo, coords *Coordinates, opts Options) *TodoDriver {
	opts = opts.withDefaults(timewindow.DefaultBands())
	return &TodoDriver{
		sink:       sink,
		gate:       gate,
		source:     source,
		coords:     coords,
		classifier: timewindow.New(opts.Bands),
		opts:       opts,
	}
}

// Run blocks until the context is cancelled.
func (d *TodoDriver) Run(ctx context.Context) {
	runLoop(ctx, d.opts.Interval, d.CheckOnce)
}

// CheckOnce performs a single pass over the todo collection.
func (d *TodoDriver) CheckOnce(ctx context.Context) {
	now := d.opts.Clock.Now().In(d.opts.Location)

	for _, todo := range d.source() {
		if todo.Completed {
			continue
		}
		if todo.ScheduledTime.IsZero() {
			continue
		}

		// Todo reminders all fade on their own, even the late nags.
		switch d.classifier.Classify(now, todo.ScheduledTime) {
		case timewindow.Upcoming:
			message := fmt.Sprintf("📋 %q starts in 15 minutes", todo.Title)
			if todo.Location != "" {
				message += " at " + todo.Location
			}
			if todo.HighRisk() && d.coords != nil {
				snapshot := d.gate.Current(ctx, d.coords.Latitude, d.coords.Longitude)
				if !snapshot.Err && (snapshot.Raining || snapshot.Snowing) {
					message += " ⚠️ Bad weather detected - check conditions!"
				}
			}
			d.sink.Add(models.Notification{
				Kind:    models.KindWarning,
				Title:   "⏰ Todo Reminder",
				Message: message,
			})
		case timewindow.DueNow:
			message := fmt.Sprintf("🎯 Time for: %q", todo.Title)
			if todo.Location != "" {
				message += " at " + todo.Location
			}
			if todo.HighRisk() {
				message += " - Check traffic & weather before leaving!"
			}
			d.sink.Add(models.Notification{
				Kind:    models.KindSuccess,
				Title:   "🚀 Now Time!",
				Message: message,
			})
		case timewindow.OverdueSoon:
			d.sink.Add(models.Notification{
				Kind:    models.KindAlert,
				Title:   "⏳ Getting Late",
				Message: fmt.Sprintf("Boss! %q was supposed to start 5 minutes ago. Get moving!", todo.Title),
			})
		case timewindow.OverdueLate:
			d.sink.Add(models.Notification{
				Kind:    models.KindAlert,
				Title:   "🔥 SERIOUSLY?!",
				Message: fmt.Sprintf("BOSS! %q is NOW 30+ MINUTES LATE! This is urgent!", todo.Title),
			})
		}
	}
}
