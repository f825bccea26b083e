package httpupload

import (
	"bytes"
	"cat-async/internal/core/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

func interpretResponse(resp *http.Response, limit int64) domain.TransferResult {
	code := resp.StatusCode
	body, _ := io.ReadAll(io.LimitReader(resp.Body, limit))

	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return domain.TransferResult{OK: true, StatusCode: &code}
	}

	return domain.TransferResult{
		StatusCode: &code,
		Message:    extractMessage(body),
		Err:        fmt.Errorf("%w: status %d", domain.ErrRejected, code),
	}
}

// extractMessage tries a structured {message} or {error} payload, then the
// whole JSON document, then the raw text
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.MessageServerError
	}

	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return string(trimmed)
	}

	if message, ok := payload["message"].(string); ok && message != "" {
		return message
	}
	switch e := payload["error"].(type) {
	case string:
		if e != "" {
			return e
		}
	case map[string]any:
		if message, ok := e["message"].(string); ok && message != "" {
			return message
		}
	}
	return string(trimmed)
}

func transportFailure(ctx context.Context, err error) domain.TransferResult {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return domain.TransferResult{Message: domain.MessageCancelled, Err: fmt.Errorf("%w: %w", domain.ErrCancelled, err)}
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return domain.TransferResult{Message: domain.MessageTimeout, Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	default:
		return domain.TransferResult{Message: domain.MessageNetworkError, Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	}
}

func readFailure(err error) domain.TransferResult {
	return domain.TransferResult{Message: domain.MessageReadError, Err: err}
}
