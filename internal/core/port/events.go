package port

import (
	"cat-async/internal/core/domain"
	"context"
)

// Notifier delivers toast-style notifications to the user
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}

// EventPublisher delivers session state events
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SessionEvent) error
}

// Observer is everything a session reports to
type Observer interface {
	Notifier
	EventPublisher
}

// EventConsumer is an interface to define an event consumer (nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, subject string, data []byte) error
}
