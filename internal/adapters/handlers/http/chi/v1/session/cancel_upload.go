package session

import (
	"cat-async/internal/core/domain"
	"errors"
	"net/http"
)

// CancelUploadV1 aborts the in-flight transfer
func (h *HandlerV1) CancelUploadV1(w http.ResponseWriter, r *http.Request) {

	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.Cancel(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNotUploading):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error cancelling upload", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSession(w, http.StatusOK, session)
	}
}
