package storage

import (
	"cat-async/internal/adapters/storage/local"
	"cat-async/internal/adapters/storage/minio"
	"cat-async/internal/config"
	"cat-async/internal/core/port"
	"context"
	"log/slog"
)

// NewFileSource serves local paths, and minio:// keys when minio is configured
func NewFileSource(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (port.FileSource, error) {
	schemes := map[string]port.FileSource{}
	if cfg.Enabled() {
		minioAdapter, err := minio.NewAdapter(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		schemes[minio.Scheme] = minioAdapter
		logger.Info("minio file source initialized", "bucket", cfg.BucketName)
	}
	return NewRouter(local.NewSource(logger), schemes), nil
}
