package httpupload

import (
	"bytes"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"io"
	"log/slog"
	"net/http"
)

// BufferedDriver renders the whole body in memory before sending it. It
// reports no byte progress
type BufferedDriver struct {
	base
}

var _ port.TransferDriver = (*BufferedDriver)(nil)

// NewBufferedDriver creates a BufferedDriver
func NewBufferedDriver(client *http.Client, source port.FileSource, maxErrorBody int64, logger *slog.Logger) *BufferedDriver {
	return &BufferedDriver{base: newBase(client, source, maxErrorBody, logger)}
}

func (d *BufferedDriver) Send(ctx context.Context, file domain.SelectedFile, target domain.UploadTarget, _ port.ProgressFunc) domain.TransferResult {
	src, err := d.source.Open(ctx, file)
	if err != nil {
		return readFailure(err)
	}
	defer src.Close()

	body, err := newUploadBody(src, file, nil)
	if err != nil {
		return readFailure(err)
	}
	payload, err := io.ReadAll(body.reader)
	if err != nil {
		return readFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return transportFailure(ctx, err)
	}
	req.Header.Set("Content-Type", body.contentType)

	d.logger.Debug("buffered upload", "target", target, "file", file.Name, "part_type", body.partType, "content_length", len(payload))
	return d.do(req, target)
}
