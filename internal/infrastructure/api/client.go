// Package api is the HTTP client for the garment-export management backend.
// Every call is a single attempt: failures are returned to the caller and
// never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/infrastructure/auth"
	"github.com/erp/ausyexpo/internal/infrastructure/logger"
	"github.com/erp/ausyexpo/internal/infrastructure/telemetry"
)

// maxResponseBytes bounds how much of a response body is read into memory.
const maxResponseBytes = 16 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string // e.g. http://localhost:8080; /api is appended
	Timeout    time.Duration
	UserAgent  string
	Session    *auth.Session
	Logger     *zap.Logger
	Meter      metric.Meter
	HTTPClient *http.Client
}

// Client issues authenticated JSON requests against /api.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	session    *auth.Session
	userAgent  string
	logger     *zap.Logger
	metrics    *telemetry.APIMetrics
}

// NewClient creates a client. The session is fixed for the client's lifetime.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/api/")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Session == nil {
		opts.Session = auth.NewSession("")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "ausyexpo-console/1.0"
	}
	meter := opts.Meter
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(telemetry.TracerName)
	}

	metrics, err := telemetry.NewAPIMetrics(meter)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		session:    opts.Session,
		userAgent:  opts.UserAgent,
		logger:     opts.Logger.Named("api"),
		metrics:    metrics,
	}, nil
}

// Request is one REST call relative to /api.
type Request struct {
	Method string
	Path   string // e.g. "branches/3/toggle-status"
	Query  map[string]string
	Body   any
	// Route is the templated path used for span names and metrics,
	// e.g. "branches/{id}". Defaults to Path.
	Route string
}

// Session returns the credential the client was built with.
func (c *Client) Session() *auth.Session {
	return c.session
}

// BaseURL returns the resolved /api/ base.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do executes req and decodes a JSON response into out (if non-nil).
// Non-2xx responses become *Error carrying the server's message.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	u, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return fmt.Errorf("building URL: %w", err)
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}
	requestID := uuid.NewString()
	ctx = logger.WithContext(logger.WithRequestID(ctx, requestID), c.logger)
	ctx, span := telemetry.StartClientSpan(ctx, req.Method+" /api/"+route,
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", u.String()),
		attribute.String("http.route", "/api/"+route),
	)
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	c.session.Authorize(httpReq)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		telemetry.RecordError(span, err)
		c.metrics.Observe(ctx, req.Method, "/api/"+route, 0, elapsed)
		logger.L(ctx).Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", u.String()),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w: %w", req.Method, u.Path, shared.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("reading response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.metrics.Observe(ctx, req.Method, "/api/"+route, resp.StatusCode, elapsed)
	logger.L(ctx).Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(req.Method, u.Path, resp.StatusCode, body)
		telemetry.RecordError(span, apiErr)
		return apiErr
	}

	if raw, ok := out.(*rawBody); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("decoding %s %s response: %w", req.Method, u.Path, err)
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) buildURL(path string, query map[string]string) (*url.URL, error) {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "api/")
	if path == "" {
		return nil, errors.New("empty path")
	}
	u, err := c.baseURL.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}
