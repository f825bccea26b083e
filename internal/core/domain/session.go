package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState represents the state of an upload session
type SessionState string

const (
	SessionStateIdle      SessionState = "idle"
	SessionStateReady     SessionState = "ready"
	SessionStateUploading SessionState = "uploading"
	SessionStateSucceeded SessionState = "succeeded"
	SessionStateFailed    SessionState = "failed"
	SessionStateCancelled SessionState = "cancelled"
)

// IsTerminal reports whether the state ends an attempt
func (s SessionState) IsTerminal() bool {
	switch s {
	case SessionStateSucceeded, SessionStateFailed, SessionStateCancelled:
		return true
	default:
		return false
	}
}

// OutcomeKind represents the kind of the last outcome
type OutcomeKind string

const (
	OutcomeKindSuccess OutcomeKind = "success"
	OutcomeKindError   OutcomeKind = "error"
)

// Outcome is the user-facing result of the last attempt
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// SelectedFile represents the file chosen for a session
type SelectedFile struct {
	Name      string `json:"name"`
	SizeBytes uint64 `json:"size_bytes"`
	// Location is where the file source can reopen the file (path, minio://key)
	Location string `json:"location"`
}

// UploadSession is a point-in-time view of one session
type UploadSession struct {
	ID              uuid.UUID     `json:"id"`
	Target          UploadTarget  `json:"target"`
	State           SessionState  `json:"state"`
	ProgressPercent int           `json:"progress_percent"`
	File            *SelectedFile `json:"file,omitempty"`
	LastOutcome     *Outcome      `json:"last_outcome,omitempty"`
	Attempt         uint64        `json:"attempt"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
