package minio

import (
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Scheme prefixes locations served by this adapter: minio://<object-key>
const Scheme = "minio"

// Adapter is an adapter for minio. It serves objects of one bucket as
// selectable files
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.BucketName)
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Stat resolves minio://<object-key> into a selected file
func (a *Adapter) Stat(ctx context.Context, location string) (*domain.SelectedFile, error) {
	key, err := objectKey(location)
	if err != nil {
		return nil, err
	}

	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, location)
		}
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}

	a.logger.Debug("object selected",
		slog.String("fileKey", key),
		slog.String("bucket", a.config.BucketName),
		slog.Int64("size", info.Size))

	return &domain.SelectedFile{
		Name:      path.Base(key),
		SizeBytes: uint64(info.Size),
		Location:  location,
	}, nil
}

// Open streams the object behind a selected file
func (a *Adapter) Open(ctx context.Context, file domain.SelectedFile) (io.ReadCloser, error) {
	key, err := objectKey(file.Location)
	if err != nil {
		return nil, err
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}

func objectKey(location string) (string, error) {
	key, ok := strings.CutPrefix(location, Scheme+"://")
	if !ok || strings.Trim(key, "/") == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedLocation, location)
	}
	return strings.TrimPrefix(key, "/"), nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
