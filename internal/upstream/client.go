// Package upstream is the HTTP client for the remote complaint portal API.
// It returns decoded but un-normalized payloads; reconciling the backend's
// shape variability into the canonical model is the sync layer's job.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"redress/pkg/platform/sentinel"
)

// Config carries the transport settings. Retries is the number of attempts
// after the first; backoff doubles between attempts and applies uniformly
// to every operation.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Client talks to the portal backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	retries int
	backoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient swaps the underlying http.Client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  slog.Default(),
		retries: cfg.Retries,
		backoff: backoff,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// getJSON issues a GET and decodes the body into an untyped value.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (any, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, nil)
}

// doJSON runs the request with retry and decodes the JSON response. A
// rebuild function must be supplied for requests whose body cannot be
// replayed (multipart uploads).
func (c *Client) doJSON(req *http.Request, rebuild func() (*http.Request, error)) (any, error) {
	var lastErr error
	delay := c.backoff

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if rebuild != nil {
				var err error
				if req, err = rebuild(); err != nil {
					return nil, err
				}
			}
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		payload, err := c.attempt(req)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		c.logger.WarnContext(req.Context(), "upstream request retrying",
			"path", req.URL.Path,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return nil, lastErr
}

func (c *Client) attempt(req *http.Request) (any, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, sentinel.ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%s %s: status %d: %w", req.Method, req.URL.Path, resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return payload, nil
}

// retryable reports whether the failure is worth another attempt. Transport
// failures and 5xx responses are; client errors are not.
func retryable(err error) bool {
	return errors.Is(err, sentinel.ErrUnavailable)
}
