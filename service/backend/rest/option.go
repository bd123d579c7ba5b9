package rest

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option customises a Client.
type Option func(c *Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithBearerToken authenticates requests with an API token.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.authorize = func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithBasicAuth authenticates requests with user credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.authorize = func(req *http.Request) {
			req.SetBasicAuth(username, password)
		}
	}
}

// WithOrgID scopes requests to an organisation.
func WithOrgID(orgID string) Option {
	return func(c *Client) {
		if orgID != "" {
			c.headers.Set(orgIDHeader, orgID)
		}
	}
}

// WithHeader adds a static header to every request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
