// Package gateway issues rating API calls and normalizes their results.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/ratingdesk/pkg/logger"
	"github.com/okian/ratingdesk/pkg/metrics"
)

// DefaultTimeout bounds every rating API call.
const DefaultTimeout = 30 * time.Second

// Request describes one rating API call.
type Request struct {
	BaseURL  string
	Endpoint Endpoint
	// Query is appended url-encoded; used by GET endpoints.
	Query url.Values
	// Body is sent as JSON. Strings, byte slices and json.RawMessage are
	// sent verbatim; nil sends no body.
	Body any
}

// URL joins the base URL (trailing slashes dropped), the endpoint path and
// the encoded query.
func (r Request) URL() string {
	u := strings.TrimRight(r.BaseURL, "/") + r.Endpoint.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Client performs rating API calls. It holds no per-call state and keeps no
// idle connections between calls.
type Client struct {
	timeout   time.Duration
	transport http.RoundTripper
	logger    logger.Logger
}

// New creates a Client with a 30 second timeout.
func New(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		transport: &http.Transport{Proxy: http.ProxyFromEnvironment, DisableKeepAlives: true},
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call issues the request and waits for the response or the timeout. It
// never returns an error: every failure is encoded in the Outcome. Caller
// cancellation is ignored once the call starts.
func (c *Client) Call(ctx context.Context, req Request) Outcome {
	start := time.Now()
	status, raw, err := c.do(context.WithoutCancel(ctx), req)
	out := NewOutcome(status, raw, err)
	out.Duration = time.Since(start)

	c.observe(ctx, req, out)
	return out
}

func (c *Client) do(ctx context.Context, req Request) (int, string, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return 0, "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Endpoint.Method, req.URL(), body)
	if err != nil {
		return 0, "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Redirects are followed by the default policy.
	client := &http.Client{Transport: c.transport, Timeout: c.timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, string(data), fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, string(data), nil
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (c *Client) observe(ctx context.Context, req Request, out Outcome) {
	path, method := req.Endpoint.Path, req.Endpoint.Method
	ms := float64(out.Duration.Microseconds()) / 1000

	metrics.RecordUpstreamRequest(path, method, strconv.Itoa(out.Status))
	metrics.RecordUpstreamLatency(path, method, ms)

	fields := []logger.Field{
		logger.String("method", method),
		logger.String("url", req.URL()),
		logger.Int("status", out.Status),
		logger.Duration("duration", out.Duration),
	}
	switch {
	case out.TransportError != "":
		metrics.RecordUpstreamTransportError(path)
		c.logger.Warn(ctx, "rating api unreachable", append(fields, logger.Error(errors.New(out.TransportError)))...)
	case !out.Success:
		c.logger.Warn(ctx, "rating api call failed", append(fields, logger.Int("body_bytes", len(out.Raw)))...)
	default:
		c.logger.Debug(ctx, "rating api call", fields...)
	}
}
