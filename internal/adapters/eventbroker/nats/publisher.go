package nats

import (
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// streamMaxAge bounds how long session events are kept on the stream
const streamMaxAge = 24 * time.Hour

// Publisher publishes session events and notifications to JetStream
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

var _ port.Observer = (*Publisher)(nil)

// NewNATSPublisher connects to NATS and creates or updates the session stream
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg.URL, cfg.StreamName+"-publisher", logger)
	if err != nil {
		return nil, err
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{wildcard(cfg.Subject)},
		MaxAge:   streamMaxAge,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &Publisher{
		logger: logger,
		conn:   conn,
		js:     js,
		config: cfg,
	}, nil
}

// Publish sends a session event to <subject>.<session-id>.<event-type>
func (p *Publisher) Publish(ctx context.Context, event domain.SessionEvent) error {
	return p.publish(ctx, EventSubject(p.config.Subject, event.SessionID, event.Type), event)
}

// Notify sends a notification to <subject>.<session-id>.notification
func (p *Publisher) Notify(ctx context.Context, notification domain.Notification) error {
	return p.publish(ctx, EventSubject(p.config.Subject, notification.SessionID, domain.EventTypeNotification), notification)
}

func (p *Publisher) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if _, err = p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	p.logger.Debug("published to NATS", "subject", subject)
	return nil
}

// Close flushes pending messages and closes the connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
