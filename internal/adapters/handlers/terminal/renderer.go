package terminal

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Renderer prints session events and notifications as terminal lines.
// Events that arrive out of order (by Seq) are dropped
type Renderer struct {
	out         io.Writer
	showSession bool
	logger      *slog.Logger

	mu      sync.Mutex
	lastSeq map[uuid.UUID]uint64
}

var (
	_ port.Observer       = (*Renderer)(nil)
	_ port.MessageService = (*Renderer)(nil)
)

// NewRenderer creates a Renderer. showSession prefixes every line with the
// short session id, for output mixing several sessions
func NewRenderer(out io.Writer, showSession bool, logger *slog.Logger) *Renderer {
	return &Renderer{
		out:         out,
		showSession: showSession,
		logger:      logger,
		lastSeq:     make(map[uuid.UUID]uint64),
	}
}

func (r *Renderer) Publish(_ context.Context, event domain.SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.lastSeq[event.SessionID]; ok && event.Seq <= last {
		r.logger.Debug("dropping stale session event", "session_id", event.SessionID, "seq", event.Seq, "last_seq", last)
		return nil
	}
	r.lastSeq[event.SessionID] = event.Seq

	return r.printLocked(event.SessionID, describe(event.Session))
}

func (r *Renderer) Notify(_ context.Context, notification domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	marker := "[ok]"
	if notification.Variant == domain.NotificationVariantDestructive {
		marker = "[error]"
	}
	line := fmt.Sprintf("%s %s", marker, notification.Title)
	if notification.Description != "" {
		line += ": " + notification.Description
	}
	return r.printLocked(notification.SessionID, line)
}

// HandleMessage decodes a payload read from the session event stream. The
// last subject token tells notifications from session events
func (r *Renderer) HandleMessage(ctx context.Context, subject string, data []byte) error {
	if subjectEventType(subject) == domain.EventTypeNotification {
		var notification domain.Notification
		if err := json.Unmarshal(data, &notification); err != nil {
			return fmt.Errorf("failed to decode notification: %w", err)
		}
		return r.Notify(ctx, notification)
	}

	var event domain.SessionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to decode session event: %w", err)
	}
	return r.Publish(ctx, event)
}

func (r *Renderer) printLocked(sessionID uuid.UUID, line string) error {
	if r.showSession {
		line = fmt.Sprintf("[%s] %s", shortID(sessionID), line)
	}
	_, err := fmt.Fprintln(r.out, line)
	return err
}

func describe(session domain.UploadSession) string {
	switch session.State {
	case domain.SessionStateIdle:
		return "no file selected"
	case domain.SessionStateReady:
		if session.File == nil {
			return "ready"
		}
		return fmt.Sprintf("ready: %s (%s)", session.File.Name, humanize.Bytes(session.File.SizeBytes))
	case domain.SessionStateUploading:
		return fmt.Sprintf("%d%% uploading...", session.ProgressPercent)
	default:
		if session.LastOutcome == nil {
			return string(session.State)
		}
		return fmt.Sprintf("%s: %s", session.State, session.LastOutcome.Message)
	}
}

func subjectEventType(subject string) domain.EventType {
	return domain.EventType(subject[strings.LastIndex(subject, ".")+1:])
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
