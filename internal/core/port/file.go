package port

import (
	"cat-async/internal/core/domain"
	"context"
	"io"
)

// FileSource resolves user-chosen locations into files that can be streamed
type FileSource interface {
	Stat(ctx context.Context, location string) (*domain.SelectedFile, error)
	Open(ctx context.Context, file domain.SelectedFile) (io.ReadCloser, error)
}
