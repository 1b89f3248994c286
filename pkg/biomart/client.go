package biomart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tedil/go-biomart/pkg/observability"
)

const (
	// DefaultServerURL is the Ensembl martservice endpoint, the canonical
	// public BioMart installation.
	DefaultServerURL = "https://www.ensembl.org/biomart/martservice"

	httpTimeout = 30 * time.Second

	userAgent = "go-biomart/1.0 (https://github.com/tedil/go-biomart)"
)

// Client provides access to a BioMart martservice endpoint.
//
// The zero value is not usable; create clients with [New]. A Client holds no
// mutable state beyond its configuration, so all methods are safe for
// concurrent use by multiple goroutines.
type Client struct {
	server  string
	http    *http.Client
	headers map[string]string
}

// Option configures a Client created by [New].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Useful for custom
// transports or proxies.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeader sets a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a Client for the given martservice URL. An empty server falls
// back to [DefaultServerURL]. The client sets a User-Agent header on all
// requests.
func New(server string, opts ...Option) *Client {
	if server == "" {
		server = DefaultServerURL
	}
	c := &Client{
		server:  server,
		http:    NewHTTPClient(),
		headers: map[string]string{"User-Agent": userAgent},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient creates an HTTP client with the standard martservice timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Server returns the configured martservice URL.
func (c *Client) Server() string { return c.server }

// Query executes a built query and wraps the raw result body in a
// [Response]. The XML query document is sent as a form-encoded POST, which
// the martservice accepts for arbitrarily large filter value lists.
//
// Returns [ErrNetwork] on transport failure and [ErrService] for non-success
// statuses or "Query ERROR" payloads, which the service reports with a 200
// status.
func (c *Client) Query(ctx context.Context, q *Query) (*Response, error) {
	form := url.Values{"query": {q.XML()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if msg, ok := serviceError(body); ok {
		return nil, fmt.Errorf("%w: %s", ErrService, msg)
	}
	return &Response{raw: body}, nil
}

// get performs a GET against the martservice endpoint with the given
// parameters and returns the raw body.
func (c *Client) get(ctx context.Context, params url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.URL.RawQuery = params.Encode()
	return c.do(req)
}

func (c *Client) do(req *http.Request) (string, error) {
	ctx := req.Context()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}
	return string(body), nil
}

func checkStatus(code int) error {
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	return fmt.Errorf("%w: status %d", ErrService, code)
}

// serviceError detects error payloads the martservice delivers with a
// success status. The body then starts with a line like
// "Query ERROR: caught BioMart::Exception ...".
func serviceError(body string) (string, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "Query ERROR") {
		return "", false
	}
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		trimmed = strings.TrimRight(trimmed[:i], "\r")
	}
	return trimmed, true
}
