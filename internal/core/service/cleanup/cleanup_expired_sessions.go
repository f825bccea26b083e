package cleanup

import (
	"context"
	"time"
)

// CleanupExpiredSessions closes and removes every session idle since now-ttl
func (c *cleanupService) CleanupExpiredSessions(ctx context.Context, now time.Time) error {

	sessions, err := c.repo.FindAllExpired(ctx, now.Add(-c.ttl))
	if err != nil {
		return err
	}

	removed := 0
	for _, session := range sessions {
		session.Close(ctx)

		if deleteErr := c.repo.Delete(ctx, session.ID()); deleteErr != nil {
			c.logger.Error("Failed to remove expired session", "session_id", session.ID(), "err", deleteErr)
			continue
		}
		removed++
	}
	c.logger.Info("cleanup expired sessions completed", "expired", len(sessions), "removed", removed)
	return nil
}
