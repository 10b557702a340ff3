package gateway

import (
	"net/http"
	"time"

	"github.com/okian/ratingdesk/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransport replaces the HTTP transport, e.g. for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}
