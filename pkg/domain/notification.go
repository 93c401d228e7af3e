package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient outcome message shown to the user.
// Notifications are never persisted; the UI drops each one a fixed
// delay after Timestamp.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Type      NotificationType
	Timestamp time.Time
}

// NewNotification creates a notification stamped with the current time.
func NewNotification(typ NotificationType, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      typ,
		Timestamp: time.Now(),
	}
}
