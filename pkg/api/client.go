package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is used when no address is configured.
const DefaultBaseURL = "http://localhost:3000"

// maxBodySize caps how much of a response body is read. 1 MB is far
// beyond anything the back-office API returns.
const maxBodySize = 1 << 20

// Client is the back-office API gateway client. It is the sole point
// through which the UI reaches the remote system; every operation is a
// thin typed wrapper over do.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs a single HTTP request. A non-empty token is attached as a
// Bearer Authorization header. On a non-2xx status the parsed body is
// handed to mapError, which always produces an *APIError. When no
// response is received at all, the failure is wrapped as *ConnError.
//
// Success bodies that fail to parse as JSON leave out untouched rather
// than raising; callers must not assume a populated out on 2xx.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		respBody = nil
	}

	if resp.StatusCode >= 400 {
		return mapError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		// Parse failures degrade to the zero value, matching the
		// "body or null" contract of the gateway.
		_ = json.Unmarshal(respBody, out)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
