package httpupload

import (
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	StrategyStreaming = "streaming"
	StrategyBuffered  = "buffered"
)

const defaultMaxErrorBody = 64 << 10

// NewDriver builds the transfer driver selected by cfg.Strategy
func NewDriver(cfg config.UploadConfig, client *http.Client, source port.FileSource, logger *slog.Logger) (port.TransferDriver, error) {
	switch cfg.Strategy {
	case StrategyStreaming, "":
		return NewStreamingDriver(client, source, cfg.MaxErrorBodyBytes, logger), nil
	case StrategyBuffered:
		return NewBufferedDriver(client, source, cfg.MaxErrorBodyBytes, logger), nil
	default:
		return nil, fmt.Errorf("unknown upload strategy %q", cfg.Strategy)
	}
}

type base struct {
	client       *http.Client
	source       port.FileSource
	maxErrorBody int64
	logger       *slog.Logger
}

func newBase(client *http.Client, source port.FileSource, maxErrorBody int64, logger *slog.Logger) base {
	if client == nil {
		client = &http.Client{}
	}
	if maxErrorBody <= 0 {
		maxErrorBody = defaultMaxErrorBody
	}
	return base{client: client, source: source, maxErrorBody: maxErrorBody, logger: logger}
}

func (b base) do(req *http.Request, target domain.UploadTarget) domain.TransferResult {
	resp, err := b.client.Do(req)
	if err != nil {
		result := transportFailure(req.Context(), err)
		b.logger.Warn("upload request failed", "target", target, "error", err)
		return result
	}
	defer resp.Body.Close()

	result := interpretResponse(resp, b.maxErrorBody)
	b.logger.Debug("upload response received", "target", target, "status", resp.StatusCode, "ok", result.OK)
	return result
}
