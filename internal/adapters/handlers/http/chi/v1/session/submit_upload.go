package session

import (
	"cat-async/internal/core/domain"
	"errors"
	"net/http"
)

// SubmitUploadV1 starts the transfer. It answers as soon as the session is
// uploading; progress is read back with GetSessionV1
func (h *HandlerV1) SubmitUploadV1(w http.ResponseWriter, r *http.Request) {

	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.Submit(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNoFileSelected):
		http.Error(w, domain.MessageNoFileSelected, http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrUploadInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error submitting upload", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSession(w, http.StatusAccepted, session)
	}
}
