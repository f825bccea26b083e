package session

import (
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type sessionService struct {
	repo     port.SessionRepository
	source   port.FileSource
	driver   port.TransferDriver
	observer port.Observer
	cfg      config.UploadConfig
	logger   *slog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo port.SessionRepository, source port.FileSource, driver port.TransferDriver, observer port.Observer, cfg config.UploadConfig, logger *slog.Logger) port.SessionService {
	return &sessionService{
		repo:     repo,
		source:   source,
		driver:   driver,
		observer: observer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *sessionService) Open(ctx context.Context, link string) (*domain.UploadSession, error) {
	identifier, err := domain.ParseIdentifier(link)
	if err != nil {
		return nil, err
	}

	target := domain.NewUploadTarget(s.cfg.EndpointBase, identifier)
	controller := NewController(uuid.New(), target, s.driver, s.observer, s.cfg, s.logger)
	if err := s.repo.Create(ctx, controller); err != nil {
		return nil, fmt.Errorf("could not register session: %w", err)
	}

	s.logger.Info("session opened", "session_id", controller.ID(), "target", target)
	snap := controller.Snapshot()
	return &snap, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	controller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := controller.Snapshot()
	return &snap, nil
}

func (s *sessionService) SelectFile(ctx context.Context, id uuid.UUID, location string) (*domain.UploadSession, error) {
	controller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// skips the Stat for a locked session
	if s.cfg.LockOnSuccess && controller.Snapshot().State == domain.SessionStateSucceeded {
		return nil, domain.ErrSessionLocked
	}

	var file *domain.SelectedFile
	if location != "" {
		file, err = s.source.Stat(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("could not select file: %w", err)
		}
	}

	if s.cfg.LockOnSuccess {
		if err := controller.SelectFileUnlessSucceeded(ctx, file); err != nil {
			return nil, err
		}
	} else {
		controller.SelectFile(ctx, file)
	}
	snap := controller.Snapshot()
	return &snap, nil
}

func (s *sessionService) Submit(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	controller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := controller.Submit(ctx); err != nil {
		return nil, err
	}
	snap := controller.Snapshot()
	return &snap, nil
}

func (s *sessionService) Cancel(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	controller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := controller.Cancel(ctx); err != nil {
		return nil, err
	}
	snap := controller.Snapshot()
	return &snap, nil
}

func (s *sessionService) Discard(ctx context.Context, id uuid.UUID) error {
	controller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	controller.Close(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not discard session: %w", err)
	}
	s.logger.Info("session discarded", "session_id", id)
	return nil
}
