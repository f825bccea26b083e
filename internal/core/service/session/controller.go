package session

import (
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Controller is the upload session state machine.
//
// Every mutation happens under mu. The transfer runs in its own goroutine and
// reports back tagged with the attempt it belongs to; callbacks for any
// attempt other than the current one are dropped.
type Controller struct {
	id       uuid.UUID
	target   domain.UploadTarget
	driver   port.TransferDriver
	observer port.Observer
	cfg      config.UploadConfig
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	state     domain.SessionState
	progress  int
	file      *domain.SelectedFile
	outcome   *domain.Outcome
	attempts  uint64
	current   uint64 // attempt in flight, 0 when none
	cancelFn  context.CancelFunc
	seq       uint64
	updatedAt time.Time

	inflight sync.WaitGroup
}

var _ port.SessionController = (*Controller)(nil)

// NewController creates a session in the idle state
func NewController(id uuid.UUID, target domain.UploadTarget, driver port.TransferDriver, observer port.Observer, cfg config.UploadConfig, logger *slog.Logger) *Controller {
	c := &Controller{
		id:       id,
		target:   target,
		driver:   driver,
		observer: observer,
		cfg:      cfg,
		logger:   logger.With("session_id", id),
		now:      time.Now,
		state:    domain.SessionStateIdle,
	}
	c.updatedAt = c.now()
	return c
}

// ID returns the session id
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Snapshot returns a copy of the session
func (c *Controller) Snapshot() domain.UploadSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectFile replaces the selected file. A nil or unnamed file clears the
// selection. An in-flight attempt is aborted without an outcome.
func (c *Controller) SelectFile(ctx context.Context, file *domain.SelectedFile) {
	c.mu.Lock()
	event := c.selectFileLocked(file)
	c.mu.Unlock()

	c.publish(ctx, event)
}

// SelectFileUnlessSucceeded is SelectFile for sessions that lock after a
// confirmed upload. The state is checked under the same lock the selection
// is made with.
func (c *Controller) SelectFileUnlessSucceeded(ctx context.Context, file *domain.SelectedFile) error {
	c.mu.Lock()
	if c.state == domain.SessionStateSucceeded {
		c.mu.Unlock()
		return domain.ErrSessionLocked
	}
	event := c.selectFileLocked(file)
	c.mu.Unlock()

	c.publish(ctx, event)
	return nil
}

func (c *Controller) selectFileLocked(file *domain.SelectedFile) domain.SessionEvent {
	if c.state == domain.SessionStateUploading {
		c.logger.Info("selection replaced in-flight upload", "attempt", c.current)
		c.endAttemptLocked()
	}

	c.progress = 0
	c.outcome = nil
	if file == nil || file.Name == "" {
		c.file = nil
		c.state = domain.SessionStateIdle
	} else {
		selected := *file
		c.file = &selected
		c.state = domain.SessionStateReady
	}
	return c.eventLocked(domain.EventTypeStateChanged)
}

// Submit starts a transfer of the selected file
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == domain.SessionStateUploading {
		c.mu.Unlock()
		return domain.ErrUploadInProgress
	}

	if c.file == nil {
		c.mu.Unlock()
		c.notify(ctx, domain.Notification{
			SessionID:   c.id,
			Variant:     domain.NotificationVariantDestructive,
			Title:       "No file selected",
			Description: domain.MessageNoFileSelected,
		})
		return domain.ErrNoFileSelected
	}

	file := *c.file
	c.attempts++
	attempt := c.attempts
	c.current = attempt

	base := context.WithoutCancel(ctx)
	var attemptCtx context.Context
	if c.cfg.Timeout > 0 {
		attemptCtx, c.cancelFn = context.WithTimeout(base, c.cfg.Timeout)
	} else {
		attemptCtx, c.cancelFn = context.WithCancel(base)
	}

	c.state = domain.SessionStateUploading
	c.outcome = nil
	// starts from the eager value so the user sees the transfer has begun
	c.progress = clampPercent(c.cfg.EagerProgress)
	event := c.eventLocked(domain.EventTypeStateChanged)
	c.inflight.Add(1)
	c.mu.Unlock()

	c.logger.Info("upload started", "attempt", attempt, "file", file.Name, "size_bytes", file.SizeBytes)
	c.publish(ctx, event)

	go c.run(attemptCtx, base, attempt, file)
	return nil
}

func (c *Controller) run(ctx, eventCtx context.Context, attempt uint64, file domain.SelectedFile) {
	defer c.inflight.Done()

	result := c.driver.Send(ctx, file, c.target, func(progress domain.ProgressEvent) {
		c.onProgress(eventCtx, attempt, progress)
	})
	c.onResult(eventCtx, attempt, file, result)
}

func (c *Controller) onProgress(ctx context.Context, attempt uint64, progress domain.ProgressEvent) {
	c.mu.Lock()
	if attempt != c.current || c.state != domain.SessionStateUploading {
		c.mu.Unlock()
		return
	}

	percent, ok := percentOf(progress.Loaded, progress.Total)
	if !ok || percent <= c.progress {
		c.mu.Unlock()
		return
	}
	c.progress = percent
	event := c.eventLocked(domain.EventTypeProgress)
	c.mu.Unlock()

	c.publish(ctx, event)
}

func (c *Controller) onResult(ctx context.Context, attempt uint64, file domain.SelectedFile, result domain.TransferResult) {
	c.mu.Lock()
	if attempt != c.current || c.state != domain.SessionStateUploading {
		c.mu.Unlock()
		c.logger.Debug("discarding result of stale attempt", "attempt", attempt, "ok", result.OK)
		return
	}
	c.endAttemptLocked()

	var notification domain.Notification
	if result.OK {
		message := fmt.Sprintf("File %q uploaded successfully", file.Name)
		c.progress = 100
		c.state = domain.SessionStateSucceeded
		c.outcome = &domain.Outcome{Kind: domain.OutcomeKindSuccess, Title: "Upload complete", Message: message}
		c.file = nil
		notification = domain.Notification{
			SessionID:   c.id,
			Variant:     domain.NotificationVariantDefault,
			Title:       "Upload complete",
			Description: message,
		}
	} else {
		message := failureMessage(result)
		c.progress = 0
		c.state = domain.SessionStateFailed
		c.outcome = &domain.Outcome{Kind: domain.OutcomeKindError, Title: "Upload failed", Message: message}
		notification = domain.Notification{
			SessionID:   c.id,
			Variant:     domain.NotificationVariantDestructive,
			Title:       "Upload failed",
			Description: failureDescription(result, message),
		}
	}
	event := c.eventLocked(domain.EventTypeStateChanged)
	c.mu.Unlock()

	if result.OK {
		c.logger.Info("upload succeeded", "attempt", attempt)
	} else {
		c.logger.Warn("upload failed", "attempt", attempt, "error", result.Err, "message", result.Message)
	}
	c.publish(ctx, event)
	c.notify(ctx, notification)
}

// Cancel aborts the in-flight transfer. Any callback the driver still
// delivers for the aborted attempt is ignored
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.SessionStateUploading {
		c.mu.Unlock()
		return domain.ErrNotUploading
	}
	attempt := c.current
	c.endAttemptLocked()

	c.progress = 0
	c.state = domain.SessionStateCancelled
	c.outcome = &domain.Outcome{Kind: domain.OutcomeKindError, Title: "Upload cancelled", Message: domain.MessageCancelled}
	event := c.eventLocked(domain.EventTypeStateChanged)
	c.mu.Unlock()

	c.logger.Info("upload cancelled", "attempt", attempt)
	c.publish(ctx, event)
	c.notify(ctx, domain.Notification{
		SessionID:   c.id,
		Variant:     domain.NotificationVariantDestructive,
		Title:       "Upload cancelled",
		Description: domain.MessageCancelled,
	})
	return nil
}

// Wait blocks until every transfer goroutine of this session has returned
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close aborts any in-flight transfer silently and waits for it to return
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	if c.state == domain.SessionStateUploading {
		c.logger.Info("session closed during upload", "attempt", c.current)
		c.endAttemptLocked()
		c.progress = 0
		c.state = domain.SessionStateCancelled
		c.outcome = &domain.Outcome{Kind: domain.OutcomeKindError, Title: "Upload cancelled", Message: domain.MessageCancelled}
	}
	c.mu.Unlock()
	c.Wait()
}

// endAttemptLocked cancels the attempt context and forgets the attempt
func (c *Controller) endAttemptLocked() {
	if c.cancelFn != nil {
		c.cancelFn()
		c.cancelFn = nil
	}
	c.current = 0
}

func (c *Controller) snapshotLocked() domain.UploadSession {
	snap := domain.UploadSession{
		ID:              c.id,
		Target:          c.target,
		State:           c.state,
		ProgressPercent: c.progress,
		Attempt:         c.attempts,
		UpdatedAt:       c.updatedAt,
	}
	if c.file != nil {
		file := *c.file
		snap.File = &file
	}
	if c.outcome != nil {
		outcome := *c.outcome
		snap.LastOutcome = &outcome
	}
	return snap
}

// eventLocked stamps the mutation and builds the matching event
func (c *Controller) eventLocked(eventType domain.EventType) domain.SessionEvent {
	c.updatedAt = c.now()
	c.seq++
	return domain.SessionEvent{
		SessionID: c.id,
		Seq:       c.seq,
		Type:      eventType,
		Session:   c.snapshotLocked(),
		At:        c.updatedAt,
	}
}

func (c *Controller) publish(ctx context.Context, event domain.SessionEvent) {
	if c.observer == nil {
		return
	}
	if err := c.observer.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish session event", "type", event.Type, "seq", event.Seq, "error", err)
	}
}

func (c *Controller) notify(ctx context.Context, notification domain.Notification) {
	if c.observer == nil {
		return
	}
	if err := c.observer.Notify(ctx, notification); err != nil {
		c.logger.Warn("failed to send notification", "title", notification.Title, "error", err)
	}
}

func failureMessage(result domain.TransferResult) string {
	if result.Message != "" {
		return result.Message
	}
	switch {
	case errors.Is(result.Err, domain.ErrRejected):
		return domain.MessageServerError
	case errors.Is(result.Err, domain.ErrCancelled):
		return domain.MessageCancelled
	default:
		return domain.MessageNetworkError
	}
}

func failureDescription(result domain.TransferResult, message string) string {
	if result.StatusCode == nil {
		return message
	}
	code := *result.StatusCode
	return fmt.Sprintf("Error uploading file: %d %s. Details: %s", code, http.StatusText(code), message)
}
