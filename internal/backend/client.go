// Package backend implements the HTTP client for the HCIS backend service.
// Field names on the wire are part of the backend contract and must not be
// renamed.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client handles communication with the HCIS backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// uploadClient carries the longer timeout used for multipart uploads,
	// which can move large media files.
	uploadClient *http.Client
}

// NewClient creates a new backend client. timeout applies to JSON calls,
// uploadTimeout to multipart submissions.
func NewClient(baseURL string, timeout, uploadTimeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		uploadClient: &http.Client{
			Timeout: uploadTimeout,
		},
	}
}

// chatRequest is the POST /chat body.
type chatRequest struct {
	Question string         `json:"question"`
	Context  map[string]any `json:"context"`
}

// chatResponse is the POST /chat success body.
type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends one conversational turn. context carries the raw report
// payload the question refers to; an empty map means no bound report.
func (c *Client) Chat(ctx context.Context, question string, contextPayload map[string]any) (string, error) {
	if contextPayload == nil {
		contextPayload = map[string]any{}
	}

	jsonData, err := json.Marshal(chatRequest{Question: question, Context: contextPayload})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	return chatResp.Response, nil
}

// ListHistory fetches all persisted reports, most recent first.
func (c *Client) ListHistory(ctx context.Context) ([]map[string]any, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/history", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create history request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}
	return entries, nil
}

// DeleteHistory removes one persisted report by id.
func (c *Client) DeleteHistory(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/history/%s", c.baseURL, url.PathEscape(id))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	// Body is an empty ack; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// HealthCheck verifies that the backend is accessible.
func (c *Client) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend is unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// checkStatus converts a non-200 response into an error carrying a snippet
// of the body, which usually holds the backend's {"error": ...} message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
}
