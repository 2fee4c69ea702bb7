package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/requestid"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 1 << 20
	defaultUserAgent   = "social-client/1"
)

// Client sends JSON requests relative to a base URL. Safe for concurrent
// use; default headers may be changed while requests are in flight.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	customHTTP bool
	userAgent  string
	retries    int
	backoff    Backoff
	maxBody    int64
	logger     *slog.Logger

	mu      sync.RWMutex
	headers http.Header
}

// New creates a Client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		backoff:   ExponentialBackoff{JitterFactor: 0.2},
		maxBody:   defaultMaxBodySize,
		logger:    logger.Discard(),
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetHeader sets a default header sent with every later request.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Set(key, value)
}

// DeleteHeader removes a default header. Removing an absent header is a no-op.
func (c *Client) DeleteHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Del(key)
}

// Header returns the current value of a default header.
func (c *Client) Header(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get(key)
}

// Headers returns a copy of all default headers.
func (c *Client) Headers() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Clone()
}

// Post sends body encoded as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Join(ErrEncodeBody, err)
	}
	return c.Do(ctx, http.MethodPost, path, payload)
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Do sends a request with an already encoded JSON payload (nil for none).
// It retries only when no response was received, and for non-idempotent
// methods only when the connection could not be made.
func (c *Client) Do(ctx context.Context, method, path string, payload []byte) (*Response, error) {
	ctx, reqID := requestid.Ensure(ctx)
	target := c.resolve(path)
	log := c.logger.With(slog.String("method", method), slog.String("path", path))

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff.NextInterval(attempt)
			log.DebugContext(ctx, "retrying request", slog.Int("attempt", attempt), logger.Duration(wait))
			if err := sleep(ctx, wait); err != nil {
				return nil, errors.Join(ErrRequestFailed, lastErr, err)
			}
		}

		start := time.Now()
		resp, err := c.send(ctx, method, target, reqID, payload)
		if err == nil {
			log.DebugContext(ctx, "request completed", logger.Status(resp.Status), logger.Duration(time.Since(start)))
			return resp, nil
		}
		lastErr = err
		log.WarnContext(ctx, "request failed", logger.Error(err), slog.Int("attempt", attempt))

		if ctx.Err() != nil || !retryable(method, err) {
			break
		}
	}
	return nil, errors.Join(ErrRequestFailed, lastErr)
}

func (c *Client) send(ctx context.Context, method, target, reqID string, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	maps.Copy(req.Header, c.headers.Clone())
	c.mu.RUnlock()

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestid.Header, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errors.Join(ErrReadBody, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, ErrBodyTooLarge
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   data,
	}, nil
}

// retryable reports whether a failed attempt may be sent again. A POST whose
// connection was established may have been handled by the server.
func retryable(method string, err error) bool {
	if errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	rel, q, _ := strings.Cut(path, "?")
	u.Path = c.baseURL.Path + rel
	u.RawQuery = q
	return u.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
