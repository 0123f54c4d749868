package models

import "time"

// NotificationKind categorizes a notification for display purposes.
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
	KindAlert   NotificationKind = "alert"
)

// Notification is a transient, dismissable message. The sink assigns ID and
// CreatedAt; producers fill in the rest. Notifications auto-dismiss after the
// sink's delay unless Persistent is set.
type Notification struct {
	ID         string           `json:"id"`
	Kind       NotificationKind `json:"kind"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Persistent bool             `json:"persistent,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}
