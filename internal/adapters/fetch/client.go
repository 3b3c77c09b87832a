// Package fetch retrieves raw game payloads from the stats API.
//
// The client is deliberately dumb about existence: it returns whatever
// body the API serves, and only a connection-level failure is an error.
// The acquisition walk decides what a payload means.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default client configuration.
const (
	defaultTimeout = 30 * time.Second

	// Browser-style identification keeps the public API from rejecting
	// bulk requests.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.11 (KHTML, like Gecko) Chrome/23.0.1271.64 Safari/537.11"

	// DefaultBaseURL is the public stats API root.
	DefaultBaseURL = "https://statsapi.web.nhl.com/api/v1"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithTimeout bounds a single fetch round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// Client fetches feed/live documents over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New creates a Client with the provided options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGame retrieves the feed/live document for one encoded game id.
// Any readable body is returned as-is regardless of status code; the
// caller inspects the payload to decide whether the game exists.
func (c *Client) FetchGame(ctx context.Context, id int64) ([]byte, error) {
	url := fmt.Sprintf("%s/game/%d/feed/live", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %d: %v", ErrTransport, id, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Charset", "ISO-8859-1,utf-8;q=0.7,*;q=0.3")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: game %d: %v", ErrTransport, id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body for game %d: %v", ErrTransport, id, err)
	}
	return body, nil
}
