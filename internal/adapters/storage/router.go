package storage

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"fmt"
	"io"
	"strings"
)

// Router dispatches locations to file sources by their scheme prefix.
// Locations without a scheme go to the fallback source
type Router struct {
	fallback port.FileSource
	schemes  map[string]port.FileSource
}

// NewRouter creates a Router. schemes maps "minio" to the source serving minio://...
func NewRouter(fallback port.FileSource, schemes map[string]port.FileSource) *Router {
	if schemes == nil {
		schemes = make(map[string]port.FileSource)
	}
	return &Router{fallback: fallback, schemes: schemes}
}

func (r *Router) Stat(ctx context.Context, location string) (*domain.SelectedFile, error) {
	source, err := r.route(location)
	if err != nil {
		return nil, err
	}
	return source.Stat(ctx, location)
}

func (r *Router) Open(ctx context.Context, file domain.SelectedFile) (io.ReadCloser, error) {
	source, err := r.route(file.Location)
	if err != nil {
		return nil, err
	}
	return source.Open(ctx, file)
}

func (r *Router) route(location string) (port.FileSource, error) {
	scheme, _, found := strings.Cut(location, "://")
	if !found {
		if r.fallback == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedLocation, location)
		}
		return r.fallback, nil
	}

	source, ok := r.schemes[strings.ToLower(scheme)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedLocation, location)
	}
	return source, nil
}
