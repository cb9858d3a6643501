// Package client is a Go SDK for the MentorHub API. It mirrors the state
// a browser front end would hold: a cookie-credentialed HTTP client, an
// auth store with a cached-user fallback, a dashboard store, and route
// guard decisions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// APIError is a normalized non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// StatusOf extracts the HTTP status from an error, or 0 for transport
// failures and non-API errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one MentorHub server. Credentials ride on the cookie
// jar, so a single Client represents a single signed-in identity.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu         sync.Mutex
	expiredFns []func()
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}
}

// OnAuthExpired registers a callback fired whenever any request comes
// back 401. Callbacks run synchronously on the calling goroutine, so
// they must not issue requests through the same Client.
func (c *Client) OnAuthExpired(fn func()) {
	c.mu.Lock()
	c.expiredFns = append(c.expiredFns, fn)
	c.mu.Unlock()
}

func (c *Client) notifyAuthExpired() {
	c.mu.Lock()
	fns := make([]func(), len(c.expiredFns))
	copy(fns, c.expiredFns)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// do sends one JSON request and decodes the envelope's data into out.
// There are no retries: transport errors propagate to the caller as-is,
// HTTP errors come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	// Error bodies may be empty or non-JSON; the status code still rules.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyAuthExpired()
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}
