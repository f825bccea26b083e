package cleanup

import (
	"context"
)

// CloseAllSessions aborts every in-flight transfer, waits for it to return,
// and removes the session. Used on shutdown
func (c *cleanupService) CloseAllSessions(ctx context.Context) error {

	sessions, err := c.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		session.Close(ctx)

		if deleteErr := c.repo.Delete(ctx, session.ID()); deleteErr != nil {
			c.logger.Error("Failed to remove closed session", "session_id", session.ID(), "err", deleteErr)
		}
	}
	c.logger.Info("all sessions closed", "closed", len(sessions))
	return nil
}
