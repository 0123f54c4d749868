// Package notify holds the shared collection of currently-visible
// notifications and the optional delivery hooks attached to it.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sidekick/internal/logger"
	"sidekick/internal/models"
)

// Forwarder pushes a notification somewhere outside the process, e.g. a
// desktop tray helper. Delivery is best effort.
type Forwarder interface {
	Notify(title, message string) error
}

// Archiver records notifications for later inspection.
type Archiver interface {
	AddNotification(models.Notification) error
}

// Sink is an ordered collection of transient notifications, newest first.
// It is safe for concurrent use by independent drivers. A closed sink
// silently drops further adds so a driver finishing an in-flight check
// cannot emit into a disposed UI.
type Sink struct {
	mu            sync.Mutex
	notifications []models.Notification
	timers        map[string]*time.Timer
	dismissAfter  time.Duration
	closed        bool

	forwarder Forwarder
	archiver  Archiver

	updates chan struct{}
}

// NewSink creates a sink whose auto-dismissed entries disappear after the
// given delay.
func NewSink(dismissAfter time.Duration) *Sink {
	return &Sink{
		timers:       make(map[string]*time.Timer),
		dismissAfter: dismissAfter,
		updates:      make(chan struct{}, 1),
	}
}

// SetForwarder attaches a best-effort external delivery hook.
func (s *Sink) SetForwarder(f Forwarder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwarder = f
}

// SetArchiver attaches a history recorder.
func (s *Sink) SetArchiver(a Archiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archiver = a
}

// Add assigns an id and creation timestamp, prepends the notification, and
// schedules its removal unless the notification is marked persistent. It
// returns the assigned id, or the empty string if the sink is closed.
func (s *Sink) Add(n models.Notification) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}

	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	s.notifications = append([]models.Notification{n}, s.notifications...)

	if !n.Persistent {
		id := n.ID
		s.timers[id] = time.AfterFunc(s.dismissAfter, func() {
			s.Remove(id)
		})
	}

	forwarder := s.forwarder
	archiver := s.archiver
	s.mu.Unlock()

	s.signal()

	if archiver != nil {
		if err := archiver.AddNotification(n); err != nil {
			logger.Warn("Failed to archive notification", "error", err)
		}
	}
	if forwarder != nil {
		if err := forwarder.Notify(n.Title, n.Message); err != nil {
			logger.Debug("Notification forwarding failed", "error", err)
		}
	}

	return n.ID
}

// Remove dismisses a notification by id. Removing an unknown or already
// removed id is a no-op.
func (s *Sink) Remove(id string) {
	s.mu.Lock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	removed := false
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.signal()
	}
}

// Clear dismisses everything at once.
func (s *Sink) Clear() {
	s.mu.Lock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.notifications = nil
	s.mu.Unlock()

	s.signal()
}

// List returns a copy of the current notifications, newest first.
func (s *Sink) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Len returns the number of visible notifications.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Updates returns a channel that receives a signal whenever the collection
// changes. The signal is coalesced: consumers re-read List after each one.
func (s *Sink) Updates() <-chan struct{} {
	return s.updates
}

// Close stops all pending dismiss timers and drops subsequent adds.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Sink) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
		// A signal is already pending
	}
}
