// Package resource loads pages and the stylesheets and scripts they link,
// from local files or over HTTP.
package resource

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	stdnet "gridkit/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher reads local files and fetches HTTP/HTTPS URLs, resolving
// relative URIs against a base that is itself a path or a URL.
type DefaultFetcher struct {
	base   string
	client *stdnet.Client
}

// FetcherOption configures a DefaultFetcher.
type FetcherOption func(*DefaultFetcher)

// WithClient sets the HTTP client used for network URIs.
func WithClient(c *stdnet.Client) FetcherOption {
	return func(f *DefaultFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// NewFetcher creates a DefaultFetcher with the given base.
func NewFetcher(base string, opts ...FetcherOption) *DefaultFetcher {
	f := &DefaultFetcher{base: base, client: stdnet.NewClient()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve returns the absolute location of uri.
func (f *DefaultFetcher) Resolve(uri string) string {
	if stdnet.IsNetworkURL(uri) || filepath.IsAbs(uri) || f.base == "" {
		return uri
	}
	if stdnet.IsNetworkURL(f.base) {
		return stdnet.ResolveURL(f.base, uri)
	}
	return filepath.Join(filepath.Dir(f.base), uri)
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	resolved := f.Resolve(uri)
	if stdnet.IsNetworkURL(resolved) {
		return f.client.Fetch(ctx, resolved)
	}
	body, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", resolved, err)
	}
	return body, mime.TypeByExtension(filepath.Ext(resolved)), nil
}

// FetchText fetches uri and checks that the content type, when known, is
// textual or matches want (for example "css" or "javascript").
func FetchText(ctx context.Context, f Fetcher, uri, want string) (string, error) {
	body, contentType, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, want) {
		return "", fmt.Errorf("unexpected content type for %s: %s", want, contentType)
	}
	return string(body), nil
}
