package api

import (
	"context"
	"sync"
	"time"

	"sidekick/internal/logger"
	"sidekick/internal/models"
)

// Snapshot is the most recent view of the backend collections. Err carries
// the last fetch failure; the previous collections are kept so reminder
// checks keep running on slightly stale data during backend hiccups.
type Snapshot struct {
	Habits    []models.Habit
	Routines  []models.Routine
	Todos     []models.Todo
	FetchedAt time.Time
	Err       error
}

// Poller refreshes the backend collections on a fixed interval and holds the
// latest snapshot for the drivers and the dashboard to read.
type Poller struct {
	client   *Client
	interval time.Duration

	mu   sync.RWMutex
	snap Snapshot

	refreshCh chan struct{}
	updates   chan struct{}
}

// NewPoller creates a poller around the given client.
func NewPoller(client *Client, interval time.Duration) *Poller {
	return &Poller{
		client:    client,
		interval:  interval,
		refreshCh: make(chan struct{}, 1),
		updates:   make(chan struct{}, 1),
	}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately.
func (p *Poller) Run(ctx context.Context) {
	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		case <-p.refreshCh:
			p.fetch(ctx)
		}
	}
}

// Refresh asks the poller to re-fetch as soon as possible.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
		// A refresh is already pending
	}
}

// Snapshot returns the latest collections.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Habits returns the habits from the latest snapshot.
func (p *Poller) Habits() []models.Habit {
	return p.Snapshot().Habits
}

// Routines returns the routines from the latest snapshot.
func (p *Poller) Routines() []models.Routine {
	return p.Snapshot().Routines
}

// Todos returns the todos from the latest snapshot.
func (p *Poller) Todos() []models.Todo {
	return p.Snapshot().Todos
}

// Updates returns a coalesced change signal for the dashboard.
func (p *Poller) Updates() <-chan struct{} {
	return p.updates
}

func (p *Poller) fetch(ctx context.Context) {
	habits, habitsErr := p.client.GetHabits(ctx)
	routines, routinesErr := p.client.GetRoutines(ctx)
	todos, todosErr := p.client.GetTodos(ctx)

	p.mu.Lock()
	if habitsErr == nil {
		p.snap.Habits = habits
	}
	if routinesErr == nil {
		p.snap.Routines = routines
	}
	if todosErr == nil {
		p.snap.Todos = todos
	}
	p.snap.FetchedAt = time.Now()
	p.snap.Err = firstError(habitsErr, routinesErr, todosErr)
	err := p.snap.Err
	p.mu.Unlock()

	if err != nil {
		logger.Warn("Backend poll failed", "error", err)
	}

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
