// Package client talks to the sensor store over HTTP and renders what a
// viewer would show.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"airquality_dashboard/internal/models"
)

// ErrNetworkUnavailable means the store could not be reached at all.
var ErrNetworkUnavailable = errors.New("sensor store unreachable")

const defaultTimeout = 3 * time.Second

// StatusError is a non-2xx answer from the store.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store answered %d: %s", e.Code, e.Message)
}

// Unwrap lets callers match rejected payloads with models.ErrInvalidArgument.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusBadRequest {
		return models.ErrInvalidArgument
	}
	return nil
}

// Client is a thin JSON client for the store endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (3s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch reads the current snapshot.
func (c *Client) Fetch(ctx context.Context) (models.Snapshot, error) {
	var s models.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/sensors", nil, &s)
	return s, err
}

// Push merges partial into the stored snapshot and returns the result.
func (c *Client) Push(ctx context.Context, partial map[string]any) (models.Snapshot, error) {
	body, err := json.Marshal(partial)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}
	var resp struct {
		Success bool            `json:"success"`
		Data    models.Snapshot `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/update", body, &resp); err != nil {
		return models.Snapshot{}, err
	}
	return resp.Data, nil
}

// Status asks the store for its health.
func (c *Client) Status(ctx context.Context) (models.Status, error) {
	var st models.Status
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &st)
	return st, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
