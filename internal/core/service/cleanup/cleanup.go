package cleanup

import (
	"cat-async/internal/core/port"
	"log/slog"
	"time"
)

type cleanupService struct {
	repo   port.SessionRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewCleanupService creates a new cleanup service. Sessions untouched for
// longer than ttl are closed and removed
func NewCleanupService(repo port.SessionRepository, ttl time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}
