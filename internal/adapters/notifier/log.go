package notifier

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"log/slog"
)

// LogObserver writes session events and notifications to the structured log
type LogObserver struct {
	logger *slog.Logger
}

var _ port.Observer = (*LogObserver)(nil)

// NewLogObserver creates a LogObserver
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Publish(ctx context.Context, event domain.SessionEvent) error {
	o.logger.DebugContext(ctx, "session event",
		"session_id", event.SessionID,
		"seq", event.Seq,
		"type", event.Type,
		"state", event.Session.State,
		"progress", event.Session.ProgressPercent,
	)
	return nil
}

func (o *LogObserver) Notify(ctx context.Context, notification domain.Notification) error {
	level := slog.LevelInfo
	if notification.Variant == domain.NotificationVariantDestructive {
		level = slog.LevelWarn
	}
	o.logger.Log(ctx, level, "notification",
		"session_id", notification.SessionID,
		"title", notification.Title,
		"description", notification.Description,
	)
	return nil
}
