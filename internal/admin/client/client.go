package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/transellia/admin-console/internal/logging"
)

const (
	APIKeyHeader    = "x-api-key"
	RequestIDHeader = "X-Request-ID"

	// MaxBodySize caps how much of a response body is read. Larger bodies
	// fail with MsgResponseTooLarge.
	MaxBodySize = 4 << 20
)

// TokenSource yields the bearer token to attach, or "" for none. The session
// store implements it.
type TokenSource interface {
	Token() string
}

// Client talks JSON over HTTP to the backend. It is safe for concurrent use.
type Client struct {
	baseURL      string
	apiKey       string
	tokens       TokenSource
	http         *http.Client
	limiter      *rate.Limiter
	validate     *validator.Validate
	logger       logging.Logger
	newRequestID func() string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit paces outbound requests to rps per second. rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client for baseURL. tokens may be nil when no request needs
// authentication.
func New(baseURL, apiKey string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		tokens:       tokens,
		http:         &http.Client{},
		validate:     newValidator(),
		logger:       logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")
	return c
}

func (c *Client) currentToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any, requestID string) (*http.Request, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, rdr)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set(RequestIDHeader, requestID)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func do[T any](ctx context.Context, c *Client, method, endpoint string, body any) (out Response[T]) {
	requestID := c.newRequestID()
	log := c.logger.With("method", method, "endpoint", endpoint, "request_id", requestID)

	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "request panicked", "panic", p)
			out = networkFailure[T]()
		}
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn(ctx, "request not sent", "error", err)
			return networkFailure[T]()
		}
	}

	req, err := c.newRequest(ctx, method, endpoint, body, requestID)
	if err != nil {
		log.Error(ctx, "cannot build request", "error", err)
		return networkFailure[T]()
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return networkFailure[T]()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		log.Warn(ctx, "cannot read response", "status", resp.StatusCode, "error", err)
		return networkFailure[T]()
	}
	if len(raw) > MaxBodySize {
		log.Warn(ctx, "response too large", "status", resp.StatusCode, "limit", MaxBodySize)
		return failure[T](MsgResponseTooLarge, nil)
	}

	out = decode[T](resp.StatusCode, raw)
	log.Debug(ctx, "request finished",
		"status", resp.StatusCode,
		"success", out.Success,
		"duration", time.Since(start))
	return out
}

// Get issues a GET. Query parameters must already be part of endpoint.
func Get[T any](ctx context.Context, c *Client, endpoint string) Response[T] {
	return do[T](ctx, c, http.MethodGet, endpoint, nil)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return do[T](ctx, c, http.MethodPost, endpoint, body)
}

func Put[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return do[T](ctx, c, http.MethodPut, endpoint, body)
}

func Patch[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return do[T](ctx, c, http.MethodPatch, endpoint, body)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) Response[T] {
	return do[T](ctx, c, http.MethodDelete, endpoint, nil)
}
