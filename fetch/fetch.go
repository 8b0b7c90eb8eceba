// Package fetch downloads result payloads from a provider. Generated binaries
// (video in particular) take far longer to stream than a JSON call, so the
// client separates a short connect timeout from a minutes-scale read timeout.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/mediaforge/mediaforge"
)

const (
	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultReadTimeout bounds the whole download, including body streaming.
	DefaultReadTimeout = 5 * time.Minute
)

// Client performs authenticated artifact downloads.
type Client struct {
	httpClient *http.Client
	headers    http.Header
	maxBytes   int64
}

// Option configures a Client.
type Option func(*Client)

// WithHeader attaches a header to every download request, typically the
// provider API key.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithMaxBytes caps the downloaded payload size. Exceeding the cap fails the
// download with PayloadTooLarge. Zero means unlimited.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		c.maxBytes = n
	}
}

// WithTimeouts overrides the connect and read timeouts.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Client) {
		c.httpClient = newHTTPClient(connect, read)
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a download client with the default timeouts.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: newHTTPClient(DefaultConnectTimeout, DefaultReadTimeout),
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(connect, read time.Duration) *http.Client {
	return &http.Client{
		Timeout: read,
		Transport: &http.Transport{
			DialContext:         (&net.Dialer{Timeout: connect}).DialContext,
			TLSHandshakeTimeout: connect,
		},
	}
}

// Download fetches the payload at rawURL and returns the bytes and the
// response Content-Type. A non-2xx response or transport failure yields a
// *mediaforge.DownloadError; a payload over the configured cap yields a
// *mediaforge.PayloadTooLargeError.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &mediaforge.DownloadError{URL: rawURL, Err: err}
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &mediaforge.DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", &mediaforge.DownloadError{URL: rawURL, Status: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if c.maxBytes > 0 {
		// Read one byte past the cap to distinguish "exactly at" from "over".
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", &mediaforge.DownloadError{URL: rawURL, Err: err}
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, "", &mediaforge.PayloadTooLargeError{Limit: c.maxBytes}
	}

	return data, resp.Header.Get("Content-Type"), nil
}
