// Package fieldservice is a REST client for the field-service tables API
package fieldservice

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "laborreport/internal/platform/errors"
	"laborreport/internal/platform/logger"
)

const (
	baseURLDefault   = "https://rest.method.me/api/v1"
	defaultTimeout   = 30 * time.Second
	defaultUA        = "laborreport"
	defaultPageSize  = 100
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultRetryMax  = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// PageSize is the top value of paged queries; a page shorter than this ends paging
	PageSize int

	// Retry config for transport errors and non-200 responses
	MaxRetries int
	RetryBase  time.Duration
	RetryMax   time.Duration
}

// Client issues authenticated GET requests with bounded retry
type Client struct {
	http  *http.Client
	opts  Options
	log   *logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a new Client, filling unset options with defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RetryMax <= 0 {
		o.RetryMax = defaultRetryMax
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   logger.Named("fieldservice"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Options returns the effective options after defaults
func (c *Client) Options() Options { return c.opts }

// Do GETs path under the base URL with q as the query string and returns the
// 200 body. Transport errors and unexpected statuses are retried up to
// MaxRetries times; 401 and 403 fail at once
func (c *Client) Do(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.opts.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.once(ctx, path, u, attempt)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !perr.Retryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt >= c.opts.MaxRetries {
			return nil, exhausted(attempt+1, lastErr)
		}
		back := c.backoff(attempt)
		c.log.Warn().Err(err).Str("path", path).Dur("retry_in", back).Int("attempt", attempt).Msg("request failed retrying")
		if err := c.sleep(ctx, back); err != nil {
			return nil, err
		}
	}
}

func (c *Client) once(ctx context.Context, path, u string, attempt int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "fieldservice new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "APIKey "+c.opts.APIKey)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fieldservice transport error")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", lat).
		Msg("fieldservice http response")

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fieldservice read body failed")
		}
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, perr.Wrap(statusError(resp), perr.ErrorCodeUnauthorized, "fieldservice rejected the API key")
	default:
		se := statusError(resp)
		c.log.Warn().Int("status", se.Status).Str("body", se.Body).Str("path", path).Msg("fieldservice unexpected status")
		code := perr.ErrorCodeUnavailable
		if se.Status == http.StatusTooManyRequests {
			code = perr.ErrorCodeTooManyRequests
		}
		return nil, perr.Wrapf(se, code, "fieldservice status %d", se.Status)
	}
}

// backoff doubles RetryBase per attempt, capped at RetryMax
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	for i := 0; i < attempt && d < c.opts.RetryMax; i++ {
		d *= 2
	}
	if d > c.opts.RetryMax {
		d = c.opts.RetryMax
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
