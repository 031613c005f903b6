package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc receives upload progress as bytes are written to the wire.
// total is the full multipart body size, so percent = floor(sent*100/total).
type ProgressFunc func(sent, total int64)

// filePart attaches the file at path as the named multipart field.
func filePart(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form field %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to copy %s into request: %w", path, err)
	}
	return nil
}

// progressReader wraps the assembled multipart body and reports bytes read
// by the HTTP transport. The body is buffered up front so the total size is
// known before the first callback.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// postMultipart assembles the given parts, uploads them to path, and decodes
// the JSON response. files maps multipart field name to local file path;
// fields maps field name to a literal string value.
func (c *Client) postMultipart(ctx context.Context, path string, files map[string]string, fields map[string]string, progress ProgressFunc) (map[string]any, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, filePath := range files {
		if err := filePart(writer, field, filePath); err != nil {
			return nil, err
		}
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	total := int64(body.Len())
	reader := &progressReader{r: &body, total: total, progress: progress}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.ContentLength = total

	resp, err := c.uploadClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return payload, nil
}
