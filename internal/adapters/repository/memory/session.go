package memory

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRepository keeps live sessions in process memory. Sessions die with
// the process, there is no upload history
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]port.SessionController
}

// NewSessionRepository creates an empty repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]port.SessionController)}
}

func (r *SessionRepository) Create(ctx context.Context, session port.SessionController) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID()]; ok {
		return domain.ErrAlreadyExists
	}
	r.sessions[session.ID()] = session
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (port.SessionController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// FindAllExpired returns sessions untouched since before that are not uploading
func (r *SessionRepository) FindAllExpired(ctx context.Context, before time.Time) ([]port.SessionController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expired []port.SessionController
	for _, session := range r.sessions {
		snap := session.Snapshot()
		if snap.State == domain.SessionStateUploading {
			continue
		}
		if snap.UpdatedAt.Before(before) {
			expired = append(expired, session)
		}
	}
	return expired, nil
}

// FindAll returns every live session, uploading or not
func (r *SessionRepository) FindAll(ctx context.Context) ([]port.SessionController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]port.SessionController, 0, len(r.sessions))
	for _, session := range r.sessions {
		all = append(all, session)
	}
	return all, nil
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
