package httpupload_test

import (
	"bytes"
	"cat-async/internal/adapters/storage"
	"cat-async/internal/adapters/transfer/httpupload"
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type receivedPart struct {
	fieldName   string
	fileName    string
	contentType string
	content     []byte
}

// fileServer records the file part of each upload and answers with status and body
func fileServer(t *testing.T, status int, body string) (*httptest.Server, <-chan receivedPart) {
	t.Helper()
	parts := make(chan receivedPart, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		part, err := reader.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(part)
		parts <- receivedPart{
			fieldName:   part.FormName(),
			fileName:    part.FileName(),
			contentType: part.Header.Get("Content-Type"),
			content:     content,
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, parts
}

func sourceFor(file domain.SelectedFile, content []byte) *storage.MockFileSource {
	source := storage.NewMockFileSource()
	source.On("Open", mock.Anything, file).Return(io.NopCloser(bytes.NewReader(content)), nil)
	return source
}

type progressLog struct {
	mu     sync.Mutex
	events []domain.ProgressEvent
}

func (p *progressLog) record(event domain.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *progressLog) Events() []domain.ProgressEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ProgressEvent(nil), p.events...)
}

func TestStreamingDriver_Send(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sends the file part and reports increasing progress", func(t *testing.T) {
		// Arrange
		content := bytes.Repeat([]byte("meow "), 200_000)
		file := domain.SelectedFile{Name: "cat.txt", SizeBytes: uint64(len(content)), Location: "/tmp/cat.txt"}
		server, parts := fileServer(t, http.StatusCreated, "")
		source := sourceFor(file, content)
		driver := httpupload.NewStreamingDriver(nil, source, 0, logger)
		progress := &progressLog{}

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), progress.record)

		// Assert
		require.True(t, result.OK)
		require.NotNil(t, result.StatusCode)
		assert.Equal(t, http.StatusCreated, *result.StatusCode)
		assert.NoError(t, result.Err)

		part := <-parts
		assert.Equal(t, domain.FileFieldName, part.fieldName)
		assert.Equal(t, "cat.txt", part.fileName)
		assert.Equal(t, "text/plain; charset=utf-8", part.contentType)
		assert.Equal(t, content, part.content)

		events := progress.Events()
		require.NotEmpty(t, events)
		for i, event := range events {
			assert.Equal(t, file.SizeBytes, event.Total)
			if i > 0 {
				assert.Greater(t, event.Loaded, events[i-1].Loaded)
			}
		}
		assert.Equal(t, file.SizeBytes, events[len(events)-1].Loaded)
		source.AssertExpectations(t)
	})

	t.Run("sniffs the part content type", func(t *testing.T) {
		// Arrange
		content := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
		file := domain.SelectedFile{Name: "whiskers.png", SizeBytes: uint64(len(content))}
		server, parts := fileServer(t, http.StatusOK, "")
		driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), nil)

		// Assert
		require.True(t, result.OK)
		part := <-parts
		assert.Equal(t, "image/png", part.contentType)
		assert.Equal(t, content, part.content)
	})

	t.Run("escapes quotes in the file name", func(t *testing.T) {
		// Arrange
		content := []byte("tabby")
		file := domain.SelectedFile{Name: `my "best" cat.txt`, SizeBytes: uint64(len(content))}
		server, parts := fileServer(t, http.StatusOK, "")
		driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), nil)

		// Assert
		require.True(t, result.OK)
		part := <-parts
		assert.Equal(t, `my "best" cat.txt`, part.fileName)
	})

	t.Run("stops reporting progress once cancelled", func(t *testing.T) {
		// Arrange
		content := bytes.Repeat([]byte("purr "), 2_000_000)
		file := domain.SelectedFile{Name: "big.txt", SizeBytes: uint64(len(content))}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)
		driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		progress := &progressLog{}
		onProgress := func(event domain.ProgressEvent) {
			progress.record(event)
			cancel()
		}

		// Act
		result := driver.Send(ctx, file, domain.UploadTarget(server.URL), onProgress)

		// Assert
		assert.False(t, result.OK)
		assert.ErrorIs(t, result.Err, domain.ErrCancelled)
		assert.Equal(t, domain.MessageCancelled, result.Message)
		assert.Len(t, progress.Events(), 1)
	})

	t.Run("reports a failure to open the file", func(t *testing.T) {
		// Arrange
		file := domain.SelectedFile{Name: "gone.txt", SizeBytes: 10}
		source := storage.NewMockFileSource()
		source.On("Open", mock.Anything, file).Return(nil, domain.ErrFileNotFound)
		driver := httpupload.NewStreamingDriver(nil, source, 0, logger)

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget("http://127.0.0.1:1"), nil)

		// Assert
		assert.False(t, result.OK)
		assert.Nil(t, result.StatusCode)
		assert.ErrorIs(t, result.Err, domain.ErrFileNotFound)
		assert.Equal(t, domain.MessageReadError, result.Message)
	})
}

func TestStreamingDriver_SendRejected(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{name: "json message", status: http.StatusInternalServerError, body: `{"message":"disk full"}`, expected: "disk full"},
		{name: "json error", status: http.StatusBadRequest, body: `{"error":"invalid identifier"}`, expected: "invalid identifier"},
		{name: "nested json error", status: http.StatusBadRequest, body: `{"error":{"message":"too large"}}`, expected: "too large"},
		{name: "message wins over error", status: http.StatusConflict, body: `{"error":"conflict","message":"already uploaded"}`, expected: "already uploaded"},
		{name: "whole json document", status: http.StatusUnprocessableEntity, body: `{"detail":"bad cat"}`, expected: `{"detail":"bad cat"}`},
		{name: "raw text", status: http.StatusBadGateway, body: "  upstream unavailable\n", expected: "upstream unavailable"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", expected: domain.MessageServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			content := []byte("calico")
			file := domain.SelectedFile{Name: "cat.txt", SizeBytes: uint64(len(content))}
			server, _ := fileServer(t, tt.status, tt.body)
			driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

			// Act
			result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), nil)

			// Assert
			assert.False(t, result.OK)
			require.NotNil(t, result.StatusCode)
			assert.Equal(t, tt.status, *result.StatusCode)
			assert.ErrorIs(t, result.Err, domain.ErrRejected)
			assert.Equal(t, tt.expected, result.Message)
		})
	}
}

func TestStreamingDriver_SendTransportFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("network failure", func(t *testing.T) {
		// Arrange
		content := []byte("siamese")
		file := domain.SelectedFile{Name: "cat.txt", SizeBytes: uint64(len(content))}
		server := httptest.NewServer(http.NotFoundHandler())
		target := domain.UploadTarget(server.URL)
		server.Close()
		driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

		// Act
		result := driver.Send(context.Background(), file, target, nil)

		// Assert
		assert.False(t, result.OK)
		assert.Nil(t, result.StatusCode)
		assert.ErrorIs(t, result.Err, domain.ErrTransport)
		assert.Equal(t, domain.MessageNetworkError, result.Message)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		// Arrange
		content := []byte("sphynx")
		file := domain.SelectedFile{Name: "cat.txt", SizeBytes: uint64(len(content))}
		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-done:
			}
		}))
		t.Cleanup(server.Close)
		t.Cleanup(func() { close(done) })
		driver := httpupload.NewStreamingDriver(nil, sourceFor(file, content), 0, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// Act
		result := driver.Send(ctx, file, domain.UploadTarget(server.URL), nil)

		// Assert
		assert.False(t, result.OK)
		assert.ErrorIs(t, result.Err, domain.ErrTransport)
		assert.Equal(t, domain.MessageTimeout, result.Message)
	})
}

func TestBufferedDriver_Send(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sends the file without byte progress", func(t *testing.T) {
		// Arrange
		content := []byte(strings.Repeat("norwegian forest ", 1000))
		file := domain.SelectedFile{Name: "forest.txt", SizeBytes: uint64(len(content))}
		server, parts := fileServer(t, http.StatusOK, "")
		driver := httpupload.NewBufferedDriver(nil, sourceFor(file, content), 0, logger)
		progress := &progressLog{}

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), progress.record)

		// Assert
		require.True(t, result.OK)
		part := <-parts
		assert.Equal(t, domain.FileFieldName, part.fieldName)
		assert.Equal(t, "forest.txt", part.fileName)
		assert.Equal(t, content, part.content)
		assert.Empty(t, progress.Events())
	})

	t.Run("extracts the rejection message", func(t *testing.T) {
		// Arrange
		content := []byte("maine coon")
		file := domain.SelectedFile{Name: "coon.txt", SizeBytes: uint64(len(content))}
		server, _ := fileServer(t, http.StatusInternalServerError, `{"message":"disk full"}`)
		driver := httpupload.NewBufferedDriver(nil, sourceFor(file, content), 0, logger)

		// Act
		result := driver.Send(context.Background(), file, domain.UploadTarget(server.URL), nil)

		// Assert
		assert.False(t, result.OK)
		assert.ErrorIs(t, result.Err, domain.ErrRejected)
		assert.Equal(t, "disk full", result.Message)
	})
}

func TestNewDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := storage.NewMockFileSource()

	t.Run("streaming", func(t *testing.T) {
		// Act
		driver, err := httpupload.NewDriver(config.UploadConfig{Strategy: httpupload.StrategyStreaming}, nil, source, logger)

		// Assert
		require.NoError(t, err)
		assert.IsType(t, &httpupload.StreamingDriver{}, driver)
	})

	t.Run("buffered", func(t *testing.T) {
		// Act
		driver, err := httpupload.NewDriver(config.UploadConfig{Strategy: httpupload.StrategyBuffered}, nil, source, logger)

		// Assert
		require.NoError(t, err)
		assert.IsType(t, &httpupload.BufferedDriver{}, driver)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		// Act
		driver, err := httpupload.NewDriver(config.UploadConfig{Strategy: "carrier-pigeon"}, nil, source, logger)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, driver)
	})
}

