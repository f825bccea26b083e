package session

import (
	"cat-async/internal/core/domain"
	"encoding/json"
	"errors"
	"net/http"
)

// V1SelectFileRequest is the request to select a file. An empty location
// clears the selection
type V1SelectFileRequest struct {
	Location string `json:"location"`
}

// SelectFileV1 resolves the location and replaces the selected file
func (h *HandlerV1) SelectFileV1(w http.ResponseWriter, r *http.Request) {

	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req V1SelectFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding select file request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.SelectFile(r.Context(), id, req.Location)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrFileNotFound), errors.Is(err, domain.ErrNotAFile), errors.Is(err, domain.ErrUnsupportedLocation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrSessionLocked):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error selecting file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSession(w, http.StatusOK, session)
	}
}
