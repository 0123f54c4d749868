// Package reminder runs the periodic checks that turn habits, routines and
// todos into notifications. Each driver is an independent goroutine: an
// immediate pass on start, then a fixed-cadence ticker. Drivers share only
// the notification sink and the weather gate; a failed check never stops a
// driver, it degrades to "no notification this cycle".
//
// Missed ticks are not caught up: if the process is suspended past a trigger
// band, that reminder is skipped for the occurrence.
package reminder

import (
	"context"
	"time"

	"sidekick/internal/constants"
	"sidekick/internal/timewindow"
	"sidekick/internal/weather"
)

// Clock supplies the current time. Tests substitute a fixed clock to pin
// checks to an exact instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// WeatherService is the slice of the weather gate the drivers consume.
type WeatherService interface {
	Current(ctx context.Context, lat, lon float64) weather.Snapshot
}

// Coordinates locates the user for weather checks.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Options configure a driver's cadence, clock, timezone and trigger bands.
// Zero fields fall back to production defaults.
type Options struct {
	Interval time.Duration
	Clock    Clock
	Location *time.Location
	Bands    []timewindow.Band
}

func (o Options) withDefaults(defaultBands []timewindow.Band) Options {
	if o.Interval <= 0 {
		o.Interval = constants.DefaultCheckInterval
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Bands == nil {
		o.Bands = defaultBands
	}
	return o
}

// runLoop drives a check function on the configured cadence until the
// context is cancelled. The first pass runs immediately.
func runLoop(ctx context.Context, interval time.Duration, check func(context.Context)) {
	check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(ctx)
		}
	}
}
