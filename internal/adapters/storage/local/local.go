package local

import (
	"cat-async/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Source serves files from the local filesystem
type Source struct {
	logger *slog.Logger
}

// NewSource creates a local file source
func NewSource(logger *slog.Logger) *Source {
	return &Source{logger: logger}
}

// Stat resolves a filesystem path into a selected file
func (s *Source) Stat(ctx context.Context, location string) (*domain.SelectedFile, error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, location)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotAFile, location)
	}

	s.logger.Debug("local file selected", "path", abs, "size", info.Size())
	return &domain.SelectedFile{
		Name:      info.Name(),
		SizeBytes: uint64(info.Size()),
		Location:  abs,
	}, nil
}

// Open reopens a previously selected file
func (s *Source) Open(ctx context.Context, file domain.SelectedFile) (io.ReadCloser, error) {
	f, err := os.Open(file.Location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, file.Location)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}
