package httpupload

import (
	"bytes"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLength is how many leading bytes are used to detect the content type
const sniffLength = 3072

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// uploadBody is a multipart/form-data body holding a single file part
type uploadBody struct {
	reader        io.Reader
	contentLength int64
	contentType   string
	partType      string
}

// newUploadBody frames src as the file part. The envelope is rendered up
// front so the body length is known without buffering the file.
// wrap, when set, wraps the file content only
func newUploadBody(src io.Reader, file domain.SelectedFile, wrap func(io.Reader) io.Reader) (*uploadBody, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	head = head[:n]
	partType := mimetype.Detect(head).String()

	var envelope bytes.Buffer
	mw := multipart.NewWriter(&envelope)
	if _, err := mw.CreatePart(filePartHeader(file.Name, partType)); err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	prefix := bytes.Clone(envelope.Bytes())
	envelope.Reset()
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}
	suffix := bytes.Clone(envelope.Bytes())

	content := io.MultiReader(bytes.NewReader(head), src)
	if wrap != nil {
		content = wrap(content)
	}

	return &uploadBody{
		reader:        io.MultiReader(bytes.NewReader(prefix), content, bytes.NewReader(suffix)),
		contentLength: int64(len(prefix)) + int64(file.SizeBytes) + int64(len(suffix)),
		contentType:   mw.FormDataContentType(),
		partType:      partType,
	}, nil
}

func filePartHeader(fileName, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(domain.FileFieldName), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)
	return h
}

// progressReader reports the bytes read so far. Nothing is reported once
// ctx is done or stop has returned
type progressReader struct {
	ctx        context.Context
	r          io.Reader
	total      uint64
	onProgress port.ProgressFunc

	mu      sync.Mutex
	loaded  uint64
	stopped bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.loaded += uint64(n)
		if !p.stopped && p.ctx.Err() == nil && p.onProgress != nil {
			p.onProgress(domain.ProgressEvent{Loaded: p.loaded, Total: p.total})
		}
		p.mu.Unlock()
	}
	return n, err
}

func (p *progressReader) stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}
