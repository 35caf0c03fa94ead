package catalog

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the RESTClient.
type Option func(*RESTClient)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *RESTClient) {
		c.token = token
	}
}

// WithTimeout bounds every catalog request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *RESTClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *RESTClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithClock replaces the wall clock used for upcoming-match windows.
func WithClock(now func() time.Time) Option {
	return func(c *RESTClient) {
		if now != nil {
			c.now = now
		}
	}
}
