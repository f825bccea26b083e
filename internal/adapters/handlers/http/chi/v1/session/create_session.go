package session

import (
	"cat-async/internal/core/domain"
	"encoding/json"
	"errors"
	"net/http"
)

// V1CreateSessionRequest is the request to open a session from an upload link
type V1CreateSessionRequest struct {
	Link string `json:"link"`
}

// CreateSessionV1 opens a session for the identifier carried by the link
func (h *HandlerV1) CreateSessionV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding create session request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Link == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.Open(r.Context(), req.Link)
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier):
		http.Error(w, domain.ErrInvalidIdentifier.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error opening session", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSession(w, http.StatusCreated, session)
	}
}
