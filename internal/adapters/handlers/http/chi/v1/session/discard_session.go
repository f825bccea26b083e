package session

import (
	"cat-async/internal/core/domain"
	"errors"
	"net/http"
)

// DiscardSessionV1 closes the session, aborting any transfer silently
func (h *HandlerV1) DiscardSessionV1(w http.ResponseWriter, r *http.Request) {

	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	err := h.sessionService.Discard(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error discarding session", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
