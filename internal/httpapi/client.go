// Package httpapi provides the shared HTTP adapter used by every domain
// service: plain GET requests with query parameters, a fixed timeout, and a
// typed error taxonomy. The adapter is stateless and safe to share.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"resty.dev/v3"
)

//go:generate mockgen -source=client.go -destination=../mocks/httpapi/mock_getter.go -package=mock_httpapi Getter

// Getter issues a GET request against a configured base URL and returns the
// raw response body. Implementations never retry.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// DefaultTimeout bounds every request issued through the adapter.
const DefaultTimeout = 30 * time.Second

// Client is a resty-backed Getter.
type Client struct {
	httpClient *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.SetTimeout(timeout)
	}
}

// NewClient creates a Client bound to baseURL with the default timeout.
func NewClient(baseURL string, opts ...Option) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(DefaultTimeout)

	c := &Client{httpClient: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Get issues a GET request for path with the given query parameters.
// Parameters with empty values are omitted. A non-2xx response is returned
// as a StatusError carrying the status code and raw body; transport
// failures are returned as a NetworkError.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(compact(query)).
		Get(path)
	if err != nil {
		return nil, classify(err)
	}
	if res.IsError() {
		return nil, &StatusError{StatusCode: res.StatusCode(), Body: res.Bytes()}
	}
	return res.Bytes(), nil
}

func compact(query url.Values) url.Values {
	if query == nil {
		return url.Values{}
	}
	compacted := url.Values{}
	for name, values := range query {
		for _, value := range values {
			if value != "" {
				compacted.Add(name, value)
			}
		}
	}
	return compacted
}

func classify(err error) *NetworkError {
	if errors.Is(err, context.Canceled) {
		return &NetworkError{Kind: KindCanceled, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &NetworkError{Kind: KindTimeout, Err: err}
	}
	return &NetworkError{Kind: KindUnreachable, Err: err}
}
