// Package invoker issues HTTP calls against the service under test and captures
// the raw outcome. Every status code is a result; only transport failures are errors.
package invoker

//go:generate mockgen -source=invoker.go -destination=mocks/invoker.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// HeaderRequestID carries the per-call correlation id.
const HeaderRequestID = "X-Request-Id"

// Request describes one call relative to the configured base URL.
type Request struct {
	Method string
	// Path is appended to the base URL, e.g. "/pet/1".
	Path  string
	Query url.Values
	// Header is merged over the defaults.
	Header http.Header
	// Body is JSON encoded unless it is already []byte or io.Reader.
	Body any
}

// Invoker performs a request and returns whatever the service answered.
type Invoker interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Client is the HTTP implementation of Invoker.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	propagator propagation.TextMapPropagator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger logs every exchange at debug level and failures at warn.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// WithPropagator overrides the trace context propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(cl *Client) {
		if p != nil {
			cl.propagator = p
		}
	}
}

// New builds a Client rooted at baseURL. The base path (e.g. /api/v3) is kept.
// The default HTTP client only carries a safety timeout; requests are sent once.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		propagator: otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends req. A non-nil error means no HTTP response was obtained.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}
	requestID := httpReq.Header.Get(HeaderRequestID)

	start := time.Now()
	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log(ctx, slog.LevelWarn, "request failed",
			slog.String("method", httpReq.Method),
			slog.String("url", httpReq.URL.String()),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s %s: %w", httpReq.Method, httpReq.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body for %s %s: %w", httpReq.Method, httpReq.URL.Path, err)
	}
	out := &Response{
		Method:      httpReq.Method,
		URL:         httpReq.URL.String(),
		StatusCode:  res.StatusCode,
		Header:      res.Header.Clone(),
		Body:        body,
		Duration:    time.Since(start),
		RequestID:   requestID,
		TraceParent: httpReq.Header.Get("traceparent"),
	}
	c.log(ctx, slog.LevelDebug, "request completed",
		slog.String("method", out.Method),
		slog.String("url", out.URL),
		slog.Int("status", out.StatusCode),
		slog.Duration("duration", out.Duration),
		slog.String("request_id", requestID))
	return out, nil
}

// Get is shorthand for a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post is shorthand for a JSON POST request.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put is shorthand for a JSON PUT request.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete is shorthand for a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	// Path is already escaped by the endpoint builders.
	target, err := url.Parse(c.baseURL.String() + "/" + strings.TrimLeft(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, req.Path, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(v), "application/json", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	case io.Reader:
		return v, "application/octet-stream", nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

func (c *Client) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, level, msg, attrs...)
}

var _ Invoker = (*Client)(nil)
