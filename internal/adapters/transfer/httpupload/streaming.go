package httpupload

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"io"
	"log/slog"
	"net/http"
)

// StreamingDriver streams the file straight from its source and reports byte
// progress as the request body is consumed
type StreamingDriver struct {
	base
}

var _ port.TransferDriver = (*StreamingDriver)(nil)

// NewStreamingDriver creates a StreamingDriver
func NewStreamingDriver(client *http.Client, source port.FileSource, maxErrorBody int64, logger *slog.Logger) *StreamingDriver {
	return &StreamingDriver{base: newBase(client, source, maxErrorBody, logger)}
}

func (d *StreamingDriver) Send(ctx context.Context, file domain.SelectedFile, target domain.UploadTarget, onProgress port.ProgressFunc) domain.TransferResult {
	src, err := d.source.Open(ctx, file)
	if err != nil {
		return readFailure(err)
	}
	defer src.Close()

	progress := &progressReader{ctx: ctx, total: file.SizeBytes, onProgress: onProgress}
	defer progress.stop()

	body, err := newUploadBody(src, file, func(r io.Reader) io.Reader {
		progress.r = r
		return progress
	})
	if err != nil {
		return readFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), body.reader)
	if err != nil {
		return transportFailure(ctx, err)
	}
	req.ContentLength = body.contentLength
	req.Header.Set("Content-Type", body.contentType)

	d.logger.Debug("streaming upload", "target", target, "file", file.Name, "part_type", body.partType, "content_length", body.contentLength)
	return d.do(req, target)
}
