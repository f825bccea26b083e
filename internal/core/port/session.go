package port

import (
	"cat-async/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionController is the state machine of a single upload session
type SessionController interface {
	ID() uuid.UUID
	Snapshot() domain.UploadSession
	SelectFile(ctx context.Context, file *domain.SelectedFile)
	SelectFileUnlessSucceeded(ctx context.Context, file *domain.SelectedFile) error
	Submit(ctx context.Context) error
	Cancel(ctx context.Context) error
	Wait()
	Close(ctx context.Context)
}

// SessionRepository is an interface to interact with live sessions
type SessionRepository interface {
	Create(ctx context.Context, session SessionController) error
	FindByID(ctx context.Context, id uuid.UUID) (SessionController, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAllExpired(ctx context.Context, before time.Time) ([]SessionController, error)
	FindAll(ctx context.Context) ([]SessionController, error)
	Count(ctx context.Context) (int, error)
}

// SessionService is the entry point presentation adapters drive sessions through
type SessionService interface {
	Open(ctx context.Context, link string) (*domain.UploadSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	SelectFile(ctx context.Context, id uuid.UUID, location string) (*domain.UploadSession, error)
	Submit(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	Discard(ctx context.Context, id uuid.UUID) error
}
