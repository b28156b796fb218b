package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/helixir/openalex-explorer/internal/domain"
)

// Config configures the HTTP client.
type Config struct {
	// Timeout is the per-attempt timeout for HTTP operations.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int

	// RetryDelay is the base delay between retries. The delay doubles with
	// each attempt unless the server supplies a Retry-After header.
	RetryDelay time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// Source names the upstream API in errors.
	Source string
}

// Client wraps http.Client with rate limiting and retries.
// It is safe for concurrent use.
type Client struct {
	client      *http.Client
	rateLimiter *RateLimiter
	config      Config
}

// New creates a new HTTP client with rate limiting.
// The client applies rate limiting before each request and automatically
// retries on 429 (Too Many Requests), 5xx server errors, and transient
// network failures, with exponential backoff between attempts.
func New(cfg Config) *Client {
	// Apply defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 10
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "OpenAlex-Explorer/1.0"
	}
	if cfg.Source == "" {
		cfg.Source = "upstream"
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.BurstSize),
		config:      cfg,
	}
}

// Do executes an HTTP request with rate limiting and retries.
// It waits for the rate limiter before each request attempt, sets the
// User-Agent header, and retries on 429 (Too Many Requests) with
// Retry-After support, on 5xx server errors, and on transient network
// failures. Other 4xx responses are returned to the caller unchanged.
//
// When retries are exhausted the returned error is a *domain.RateLimitError
// if the last response was a 429, and a *domain.ExternalAPIError carrying
// the last status code otherwise.
//
// The request body is not preserved across retries; callers must provide
// requests with GetBody set if the body needs to be resent on retry.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	// Set default headers
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// A canceled or expired caller context is final. A timeout on a
			// single attempt while the caller context is still live is a
			// transient failure and is retried.
			if ctxErr := req.Context().Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			if attempt < c.config.MaxRetries {
				if err := c.waitForRetry(req.Context(), c.backoffDelay(attempt)); err != nil {
					return nil, err
				}
				// Reset body if possible for retry
				if err := c.resetRequestBody(req); err != nil {
					return nil, fmt.Errorf("cannot retry request: %w", err)
				}
				continue
			}
			return nil, domain.NewExternalAPIError(c.config.Source, 0,
				fmt.Sprintf("request failed after %d attempts", c.config.MaxRetries+1), lastErr)
		}

		// Check if we should retry based on status code
		if c.shouldRetry(resp.StatusCode) {
			retryDelay := c.getRetryDelay(resp, attempt)
			statusCode := resp.StatusCode

			// Drain and close the response body to free the connection before retry
			if resp.Body != nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}

			if attempt < c.config.MaxRetries {
				if err := c.waitForRetry(req.Context(), retryDelay); err != nil {
					return nil, err
				}
				// Reset body if possible for retry
				if err := c.resetRequestBody(req); err != nil {
					return nil, fmt.Errorf("cannot retry request: %w", err)
				}
				continue
			}

			// Max retries exhausted
			if statusCode == http.StatusTooManyRequests {
				return nil, domain.NewRateLimitError(c.config.Source, retryDelay)
			}
			return nil, domain.NewExternalAPIError(c.config.Source, statusCode,
				fmt.Sprintf("max retries exhausted after %d attempts", c.config.MaxRetries+1),
				domain.ErrServiceUnavailable)
		}

		// Success or non-retryable status
		return resp, nil
	}

	// Should not reach here, but handle edge case
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, domain.NewExternalAPIError(c.config.Source, 0, "no response received", domain.ErrInternalError)
}

// shouldRetry returns true if the status code indicates we should retry.
func (c *Client) shouldRetry(statusCode int) bool {
	// Retry on 429 Too Many Requests
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	// Retry on 5xx server errors
	return statusCode >= 500 && statusCode < 600
}

// backoffDelay returns the exponential backoff delay for the given attempt:
// RetryDelay, 2*RetryDelay, 4*RetryDelay, and so on.
func (c *Client) backoffDelay(attempt int) time.Duration {
	return c.config.RetryDelay << attempt
}

// getRetryDelay determines how long to wait before retrying.
// It respects the Retry-After header if present, otherwise falls back to
// exponential backoff.
func (c *Client) getRetryDelay(resp *http.Response, attempt int) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return c.backoffDelay(attempt)
	}

	// Try to parse as seconds
	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return c.backoffDelay(attempt)
	}

	// Try to parse as HTTP date
	if t, err := http.ParseTime(retryAfter); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return c.backoffDelay(attempt)
}

// waitForRetry waits for the specified duration, respecting context cancellation.
func (c *Client) waitForRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// resetRequestBody resets the request body for retry if possible.
func (c *Client) resetRequestBody(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("failed to get request body for retry: %w", err)
	}
	req.Body = body
	return nil
}
