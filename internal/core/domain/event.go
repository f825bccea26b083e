package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of a session event
type EventType string

const (
	EventTypeStateChanged EventType = "state_changed"
	EventTypeProgress     EventType = "progress"
	// EventTypeNotification tags notifications sharing a stream with session events
	EventTypeNotification EventType = "notification"
)

// SessionEvent is emitted on every state change and progress update.
// Seq is strictly increasing per session
type SessionEvent struct {
	SessionID uuid.UUID     `json:"session_id"`
	Seq       uint64        `json:"seq"`
	Type      EventType     `json:"type"`
	Session   UploadSession `json:"session"`
	At        time.Time     `json:"at"`
}

// NotificationVariant mirrors the toast variants of the presentation layer
type NotificationVariant string

const (
	NotificationVariantDefault     NotificationVariant = "default"
	NotificationVariantDestructive NotificationVariant = "destructive"
)

// Notification is a toast-style message for the user
type Notification struct {
	SessionID   uuid.UUID           `json:"session_id"`
	Variant     NotificationVariant `json:"variant"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
}
