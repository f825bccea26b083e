package session

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandlerV1 is the handler for v1 session routes
type HandlerV1 struct {
	sessionService port.SessionService
	logger         *slog.Logger
}

// NewSessionHandlerV1 creates HandlerV1
func NewSessionHandlerV1(service port.SessionService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		sessionService: service,
		logger:         logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateSessionV1)
	router.Get("/{sessionID}", h.GetSessionV1)
	router.Delete("/{sessionID}", h.DiscardSessionV1)
	router.Put("/{sessionID}/file", h.SelectFileV1)
	router.Post("/{sessionID}/submit", h.SubmitUploadV1)
	router.Post("/{sessionID}/cancel", h.CancelUploadV1)

	return router
}

// V1FileResponse describes the selected file
type V1FileResponse struct {
	Name      string `json:"name"`
	SizeBytes uint64 `json:"size_bytes"`
	Size      string `json:"size"`
	Location  string `json:"location"`
}

// V1SessionResponse is the session snapshot returned by every session route
type V1SessionResponse struct {
	ID              uuid.UUID           `json:"id"`
	Target          string              `json:"target"`
	State           domain.SessionState `json:"state"`
	ProgressPercent int                 `json:"progress_percent"`
	File            *V1FileResponse     `json:"file,omitempty"`
	LastOutcome     *domain.Outcome     `json:"last_outcome,omitempty"`
	Attempt         uint64              `json:"attempt"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func newSessionResponse(session *domain.UploadSession) V1SessionResponse {
	resp := V1SessionResponse{
		ID:              session.ID,
		Target:          session.Target.String(),
		State:           session.State,
		ProgressPercent: session.ProgressPercent,
		LastOutcome:     session.LastOutcome,
		Attempt:         session.Attempt,
		UpdatedAt:       session.UpdatedAt,
	}
	if session.File != nil {
		resp.File = &V1FileResponse{
			Name:      session.File.Name,
			SizeBytes: session.File.SizeBytes,
			Size:      humanize.Bytes(session.File.SizeBytes),
			Location:  session.File.Location,
		}
	}
	return resp
}

func (h *HandlerV1) writeSession(w http.ResponseWriter, status int, session *domain.UploadSession) {
	if session == nil {
		h.logger.Error("response has nil session")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(newSessionResponse(session)); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
