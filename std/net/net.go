// Package net fetches pages and their assets over HTTP for the gridkit
// tools.
package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "gridkit/1.0 (compatible; Go)"

// DefaultMaxBodySize bounds a single fetched document.
const DefaultMaxBodySize = 8 << 20

// ErrTooLarge is returned when a response body exceeds the client's limit.
var ErrTooLarge = errors.New("response body too large")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.Code, e.URL)
}

// Client fetches page assets with a size cap and a fixed user agent.
type Client struct {
	http        *http.Client
	maxBodySize int64
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger logs each request at Debug.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.Named("net")
		}
	}
}

// WithTimeout bounds a whole request including the body read.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMaxBodySize changes the body limit. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// NewClient returns a Client with a 30s timeout and DefaultMaxBodySize.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		maxBodySize: DefaultMaxBodySize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClient = NewClient()

// Fetch retrieves rawURL with the default client.
func Fetch(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	return defaultClient.Fetch(ctx, rawURL)
}

// Fetch retrieves the content at the given URL via HTTP/HTTPS.
// Returns the response body, content type, and any error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	// One extra byte tells a body at the limit from one past it.
	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, "", fmt.Errorf("fetching %s: %w (limit %d bytes)", rawURL, ErrTooLarge, c.maxBodySize)
	}

	contentType = resp.Header.Get("Content-Type")
	c.logger.Debug("fetched",
		zap.String("url", rawURL),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, contentType, nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
