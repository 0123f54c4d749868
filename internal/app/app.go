// Package app assembles the long-running pieces: the backend poller, the
// reminder drivers, the notification sink with its history archiver, and the
// scheduled summary/prune jobs.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"sidekick/internal/api"
	"sidekick/internal/backup"
	"sidekick/internal/config"
	"sidekick/internal/constants"
	"sidekick/internal/keyring"
	"sidekick/internal/logger"
	"sidekick/internal/models"
	"sidekick/internal/notify"
	"sidekick/internal/reminder"
	"sidekick/internal/storage"
	"sidekick/internal/weather"
)

type App struct {
	cfg    *config.Config
	loc    *time.Location
	store  storage.Provider
	sink   *notify.Sink
	gate   *weather.Gate
	client *api.Client
	poller *api.Poller
	cron   *cron.Cron

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds the application from config. The backend token comes from the
// OS keyring; run `sidekick token set` before the first start.
func New(cfg *config.Config) (*App, error) {
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("backend.url is not configured")
	}

	token, err := keyring.GetToken()
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, fmt.Errorf("no backend token stored, run '%s token set' first", constants.AppName)
		}
		return nil, fmt.Errorf("failed to read backend token: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	loc := cfg.TimezoneLocation()
	client := api.NewClient(cfg.Backend.URL, token)

	a := &App{
		cfg:    cfg,
		loc:    loc,
		store:  store,
		sink:   notify.NewSink(cfg.DismissAfter()),
		gate:   weather.NewGate(cfg.Weather.ProviderURL, cfg.WeatherTTL()),
		client: client,
		poller: api.NewPoller(client, cfg.PollInterval()),
		cron:   cron.New(cron.WithLocation(loc)),
	}

	a.sink.SetArchiver(store)
	if cfg.Reminder.DesktopForward {
		a.sink.SetForwarder(notify.NewTrayForwarder())
	}

	return a, nil
}

func openStore(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if err == keyring.ErrNotFound {
				return nil, fmt.Errorf("postgres driver selected but no connection string stored, run '%s token set-db' first", constants.AppName)
			}
			return nil, fmt.Errorf("failed to read database credentials: %w", err)
		}
		store := storage.NewPostgresStore(connStr)
		if err := store.Init(); err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		return store, nil
	default:
		store := storage.NewSQLiteStore(cfg.Storage.Path)
		if err := store.Init(); err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		return store, nil
	}
}

// Start launches the poller, the three reminder drivers and the cron jobs.
// It returns immediately; use Stop to shut everything down.
func (a *App) Start(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel

	opts := reminder.Options{
		Interval: a.cfg.CheckInterval(),
		Location: a.loc,
	}
	coords := a.coordinates()

	habitDriver := reminder.NewHabitDriver(a.sink, a.gate, a.poller.Habits, coords, opts)
	routineDriver := reminder.NewRoutineDriver(a.sink, a.poller.Routines, opts)
	todoDriver := reminder.NewTodoDriver(a.sink, a.gate, a.poller.Todos, coords, opts)

	a.wg.Add(4)
	go func() { defer a.wg.Done(); a.poller.Run(ctx) }()
	go func() { defer a.wg.Done(); habitDriver.Run(ctx) }()
	go func() { defer a.wg.Done(); routineDriver.Run(ctx) }()
	go func() { defer a.wg.Done(); todoDriver.Run(ctx) }()

	if err := a.setupCronJobs(); err != nil {
		cancel()
		return err
	}
	a.cron.Start()

	logger.Info("Application started",
		"backend", a.cfg.Backend.URL,
		"check_interval", a.cfg.CheckInterval(),
		"storage", a.cfg.Storage.Driver)
	return nil
}

// Stop cancels the workers, stops the cron scheduler, and closes the sink
// and history store. It blocks until the workers have returned.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	cronCtx := a.cron.Stop()
	<-cronCtx.Done()
	a.wg.Wait()

	a.sink.Close()
	if err := a.store.Close(); err != nil {
		logger.Warn("Failed to close history store", "error", err)
	}
	logger.Info("Application stopped")
}

// Sink exposes the notification sink to the dashboard.
func (a *App) Sink() *notify.Sink { return a.sink }

// Poller exposes the backend poller to the dashboard.
func (a *App) Poller() *api.Poller { return a.poller }

// Client exposes the backend client for completions and new todos.
func (a *App) Client() *api.Client { return a.client }

// Gate exposes the weather gate for the dashboard's conditions line.
func (a *App) Gate() *weather.Gate { return a.gate }

// Store exposes the notification history.
func (a *App) Store() storage.Provider { return a.store }

// Coordinates returns the configured location, or nil when unset.
func (a *App) Coordinates() *reminder.Coordinates { return a.coordinates() }

func (a *App) coordinates() *reminder.Coordinates {
	if a.cfg.Location.Latitude == nil || a.cfg.Location.Longitude == nil {
		return nil
	}
	return &reminder.Coordinates{
		Latitude:  *a.cfg.Location.Latitude,
		Longitude: *a.cfg.Location.Longitude,
	}
}

func (a *App) setupCronJobs() error {
	// Morning summary at the configured time
	summarySpec, err := cronSpecForTime(a.cfg.Reminder.SummaryTime)
	if err != nil {
		return fmt.Errorf("invalid summary time: %w", err)
	}
	if _, err := a.cron.AddFunc(summarySpec, a.sendDailySummary); err != nil {
		return fmt.Errorf("failed to schedule daily summary: %w", err)
	}

	// Nightly history prune
	if _, err := a.cron.AddFunc("30 3 * * *", a.pruneHistory); err != nil {
		return fmt.Errorf("failed to schedule history prune: %w", err)
	}

	return nil
}

// cronSpecForTime turns "HH:MM" into a daily cron spec.
func cronSpecForTime(hhmm string) (string, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

func (a *App) sendDailySummary() {
	now := time.Now().In(a.loc)
	snap := a.poller.Snapshot()

	habits := 0
	for _, h := range snap.Habits {
		if h.ScheduledOn(now.Weekday()) && !h.Completed {
			habits++
		}
	}
	routines := 0
	for _, r := range snap.Routines {
		if r.ScheduledOn(now.Weekday()) && !r.Completed {
			routines++
		}
	}
	todos := 0
	for _, t := range snap.Todos {
		if !t.Completed && !t.ScheduledTime.IsZero() &&
			t.ScheduledTime.In(a.loc).Format(constants.DateFormat) == now.Format(constants.DateFormat) {
			todos++
		}
	}

	yesterday := now.Add(-24 * time.Hour)
	fired, err := a.store.CountSince(yesterday)
	if err != nil {
		logger.Warn("Failed to count recent notifications", "error", err)
	}

	var parts []string
	if habits > 0 {
		parts = append(parts, fmt.Sprintf("%d habits", habits))
	}
	if routines > 0 {
		parts = append(parts, fmt.Sprintf("%d routines", routines))
	}
	if todos > 0 {
		parts = append(parts, fmt.Sprintf("%d todos", todos))
	}

	message := "Nothing on the schedule today. Enjoy it, boss!"
	if len(parts) > 0 {
		message = fmt.Sprintf("Boss, today you have %s on the plan.", strings.Join(parts, ", "))
	}
	if fired > 0 {
		message += fmt.Sprintf(" I nudged you %d times in the last day.", fired)
	}

	a.sink.Add(models.Notification{
		Kind:       models.KindInfo,
		Title:      "🌅 Daily Briefing",
		Message:    message,
		Persistent: true,
	})
}

func (a *App) pruneHistory() {
	// Snapshot the sqlite history before deleting anything from it
	if a.cfg.Storage.Driver != "postgres" && a.cfg.Storage.Path != "" {
		if _, err := backup.NewManager(a.cfg.Storage.Path).Create(); err != nil {
			logger.Warn("History snapshot before prune failed", "error", err)
		}
	}

	cutoff := time.Now().AddDate(0, 0, -constants.HistoryRetentionDays)
	pruned, err := a.store.PruneBefore(cutoff)
	if err != nil {
		logger.Warn("History prune failed", "error", err)
		return
	}
	if pruned > 0 {
		logger.Debug("Pruned notification history", "removed", pruned)
	}
}
