package storage

import (
	"time"

	"sidekick/internal/models"
)

// Provider persists the notification history so the `history` command and the
// daily summary survive restarts. Implementations must be safe for use from
// the sink's archiver hook and the prune job concurrently.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// History
	AddNotification(models.Notification) error
	GetNotifications(limit int) ([]models.Notification, error)
	CountSince(t time.Time) (int, error)
	PruneBefore(t time.Time) (int64, error)
}
