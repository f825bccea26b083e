package port

import (
	"cat-async/internal/core/domain"
	"context"
)

// ProgressFunc receives byte progress for the attempt it was handed to
type ProgressFunc func(event domain.ProgressEvent)

// TransferDriver sends one file to one target. Send blocks until the
// transfer ends and returns exactly one result; cancelling ctx aborts it.
type TransferDriver interface {
	Send(ctx context.Context, file domain.SelectedFile, target domain.UploadTarget, onProgress ProgressFunc) domain.TransferResult
}
