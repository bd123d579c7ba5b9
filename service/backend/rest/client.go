package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viant/correlations/internal/clock"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/tracing"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 64 << 10
	orgIDHeader     = "X-Grafana-Org-Id"
	userAgent       = "correlations-client/v1"
	contentTypeJSON = "application/json"
)

// Client implements backend.Service over net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	authorize  func(req *http.Request)
	headers    http.Header
	logger     *zap.Logger
}

var _ backend.Service = (*Client)(nil)

// New creates a client for the server at baseURL (scheme and host, optionally
// a sub-path the server is mounted under).
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL must include a host")
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: http.Header{},
		timeout: defaultTimeout,
	}
	for _, option := range options {
		option(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("rest")
	return c, nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, method+" "+path, tracing.KindClient)
	span.WithAttributes(map[string]string{"http.method": method, "http.route": path})
	defer func() { tracing.EndSpan(span, err) }()

	start := clock.Now()
	statusCode, err := c.roundTrip(ctx, method, path, body, out)
	if statusCode != 0 {
		span.SetStatusFromHTTPCode(statusCode)
	}
	fields := []zap.Field{zap.String("method", method), zap.String("path", path), zap.Duration("elapsed", clock.Since(start))}
	if err != nil {
		c.logger.Debug("request failed", append(fields, zap.Error(err))...)
		return err
	}
	c.logger.Debug("request completed", append(fields, zap.Int("status", statusCode))...)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &backend.TransportError{Method: method, Path: path, Err: fmt.Errorf("marshal request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return 0, &backend.TransportError{Method: method, Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	for name, values := range c.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if c.authorize != nil {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &backend.TransportError{Method: method, Path: path, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, backend.NewStatusError(method, path, resp.StatusCode, errorMessage(data))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &backend.TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

// errorMessage extracts the "message" field of a JSON error body, falling
// back to the trimmed raw body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}
