package courtlistener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second
)

// Client talks to the CourtListener REST API with token authentication,
// rate limiting and bounded retries.
type Client struct {
	cfg           Config
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter

	httpClient *http.Client
	token      string
	retryDelay time.Duration
}

// NewClient creates a CourtListener API client with a token provider.
func NewClient(cfg Config, tokenProvider driven.TokenProvider) *Client {
	return &Client{
		cfg:           cfg.withDefaults(),
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
		retryDelay:    RetryDelay,
	}
}

// ensureClient initializes the HTTP client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.httpClient != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	c.token = token
	c.httpClient = &http.Client{Timeout: c.cfg.Timeout}
	return nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// get performs an authenticated GET, retrying transient failures with
// exponential backoff. Auth and other 4xx failures are returned immediately.
// A request still throttled after the last retry wraps domain.ErrRateLimited.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			logger.Debug("Retrying request in %s (attempt %d/%d): %s", delay, attempt, MaxRetries, requestURL)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, err := c.doGet(ctx, requestURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}
	}

	if IsRateLimited(lastErr) {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, lastErr)
	}
	return nil, lastErr
}

// doGet executes a single request without retries.
func (c *Client) doGet(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", requestURL, err)
	}
	defer resp.Body.Close()

	if rlErr := c.rateLimiter.CheckRateLimit(resp); rlErr != nil {
		return nil, rlErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, requestURL, body)
	}
	return body, nil
}

// statusError converts a non-200 response into a typed error. Credential
// failures additionally wrap domain.ErrAuthInvalid so callers up the stack
// recognize them as fatal without knowing this package's error types.
func statusError(status int, requestURL string, body []byte) error {
	apiErr := &APIError{
		StatusCode: status,
		Message:    errorDetail(body),
		URL:        requestURL,
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	default:
		return apiErr
	}
}

// errorDetail extracts the "detail" message CourtListener returns on errors.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	const maxLen = 200
	msg := string(body)
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

// isTransient reports whether err is worth retrying. Throttled responses,
// server errors, timeouts and network failures are; cancellation and 4xx
// responses are not. An expired caller context stops the retry loop itself.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if IsRateLimited(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
