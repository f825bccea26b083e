package session

import (
	"cat-async/internal/core/domain"
	"errors"
	"net/http"
)

// GetSessionV1 returns the current snapshot, the polling endpoint for progress
func (h *HandlerV1) GetSessionV1(w http.ResponseWriter, r *http.Request) {

	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting session", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSession(w, http.StatusOK, session)
	}
}
