package cove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/example/room-schedule/internal/cache"
	"github.com/example/room-schedule/internal/domain/reservation"
)

// Client retrieves reservations from the Cove reservation service. Every
// attempt has its own timeout; transient failures are retried with a delay
// that grows linearly with the attempt number. 4xx responses and caller
// cancellation are never retried. Successful bodies are kept in the cache
// under the request URL.
type Client struct {
	hc     *http.Client
	url    string
	logger *log.Logger

	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration

	cache  cache.Cache
	loc    *time.Location
	strict bool
}

type Options struct {
	URL         string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration

	// Cache may be nil, in which case every Fetch goes to the network.
	Cache    cache.Cache
	Location *time.Location
	Strict   bool

	HTTPClient *http.Client
	Logger     *log.Logger
}

var _ reservation.Source = (*Client)(nil)

func New(opts Options) *Client {
	c := &Client{
		hc:          opts.HTTPClient,
		url:         opts.URL,
		logger:      opts.Logger,
		timeout:     opts.Timeout,
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
		cache:       opts.Cache,
		loc:         opts.Location,
		strict:      opts.Strict,
	}
	if c.hc == nil {
		c.hc = &http.Client{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	if c.loc == nil {
		c.loc = time.UTC
	}
	return c
}

func (c *Client) Name() string { return "cove" }

// Ping performs one uncached attempt and discards the body.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.get(ctx); err != nil {
		if ctx.Err() != nil {
			return canceled(ctx.Err())
		}
		return fmt.Errorf("cove ping: %w", err)
	}
	return nil
}

// Fetch returns the current reservation snapshot. With forceRefresh the
// cache is bypassed but still refreshed on success.
func (c *Client) Fetch(ctx context.Context, forceRefresh bool) ([]reservation.Reservation, error) {
	if !forceRefresh {
		if rs, ok := c.cached(ctx); ok {
			return rs, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		rs, err := c.attempt(ctx)
		if err == nil {
			return rs, nil
		}
		if ctx.Err() != nil {
			return nil, canceled(ctx.Err())
		}
		if IsClientError(err) {
			return nil, err
		}

		var se *statusError
		if errors.As(err, &se) && se.status >= 400 && se.status < 500 {
			return nil, &APIError{
				Message: err.Error(),
				Status:  se.status,
				Code:    CodeFetchFailed,
				Kind:    KindClient,
				Err:     err,
			}
		}

		lastErr = err
		c.logger.Printf("cove: fetch attempt=%d/%d url=%s err=%v", attempt, c.maxAttempts, c.url, err)

		if attempt < c.maxAttempts {
			if err := sleep(ctx, c.retryDelay*time.Duration(attempt)); err != nil {
				return nil, canceled(err)
			}
		}
	}

	return nil, &APIError{
		Message: lastErr.Error(),
		Status:  http.StatusInternalServerError,
		Code:    CodeFetchFailed,
		Kind:    KindExhausted,
		Err:     lastErr,
	}
}

func (c *Client) attempt(ctx context.Context) ([]reservation.Reservation, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	rs, err := decodeReservations(body, c.loc, c.strict, c.logger)
	if err != nil {
		return nil, err
	}
	c.store(ctx, body)
	return rs, nil
}

func (c *Client) cached(ctx context.Context) ([]reservation.Reservation, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, c.url)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.logger.Printf("cove: cache get failed: %v", err)
		}
		return nil, false
	}
	rs, err := decodeReservations(body, c.loc, c.strict, c.logger)
	if err != nil {
		c.logger.Printf("cove: dropping unreadable cache entry: %v", err)
		_ = c.cache.Delete(ctx, c.url)
		return nil, false
	}
	return rs, true
}

func (c *Client) store(ctx context.Context, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, c.url, body); err != nil {
		c.logger.Printf("cove: cache set failed: %v", err)
	}
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timed out after %s: %w", c.timeout, err)
		}
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &statusError{status: res.StatusCode, text: http.StatusText(res.StatusCode)}
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

func canceled(err error) error {
	return &APIError{
		Message: "request canceled",
		Code:    CodeCanceled,
		Kind:    KindCanceled,
		Err:     err,
	}
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
