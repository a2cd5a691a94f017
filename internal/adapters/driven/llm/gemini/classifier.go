// Package gemini provides the classification adapter backed by the Gemini
// API via the official genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// Default configuration values.
const (
	// DefaultModel is the Gemini model used for classification.
	DefaultModel = "gemini-1.5-pro"

	// MaxAttempts bounds how often one classification is tried before the
	// candidate is given up on.
	MaxAttempts = 3

	// RetryDelay is the base delay between attempts (doubles each retry).
	RetryDelay = 1 * time.Second

	// DefaultCallInterval is the minimum spacing between model calls.
	DefaultCallInterval = 2 * time.Second
)

// Config holds configuration for the Gemini classifier.
type Config struct {
	// Model is the Gemini model name (default: gemini-1.5-pro).
	Model string

	// MaxAttempts is the per-candidate attempt bound (default: 3).
	MaxAttempts int

	// CallInterval is the minimum spacing between model calls
	// (default: 2s).
	CallInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = MaxAttempts
	}
	if c.CallInterval <= 0 {
		c.CallInterval = DefaultCallInterval
	}
	return c
}

// caller is the slice of the Gemini SDK the classifier needs. Tests
// substitute a canned implementation.
type caller interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Classifier classifies opinion text through the Gemini API. The SDK client
// is created lazily on first use so construction never needs a credential.
type Classifier struct {
	cfg           Config
	tokenProvider driven.TokenProvider
	limiter       *rate.Limiter
	retryDelay    time.Duration

	mu     sync.Mutex
	caller caller
}

// NewClassifier creates a Gemini classifier. The API key is read through the
// token provider on the first Classify call.
func NewClassifier(tokenProvider driven.TokenProvider, cfg Config) *Classifier {
	cfg = cfg.withDefaults()
	return &Classifier{
		cfg:           cfg,
		tokenProvider: tokenProvider,
		limiter:       rate.NewLimiter(rate.Every(cfg.CallInterval), 1),
		retryDelay:    RetryDelay,
	}
}

// ModelName returns the name of the model being used.
func (c *Classifier) ModelName() string {
	return c.cfg.Model
}

// Classify sends one opinion's text to the model and normalizes the
// structured response. Transient failures are retried with exponential
// backoff up to the attempt bound; credential and quota failures return
// immediately and are fatal for the whole run.
func (c *Classifier) Classify(ctx context.Context, caseName, text string) (*domain.Classification, error) {
	if err := c.ensureCaller(ctx); err != nil {
		return nil, err
	}

	prompt := buildPrompt(caseName, text)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			logger.Debug("Retrying classification of %q in %v (attempt %d/%d)",
				caseName, delay, attempt+1, c.cfg.MaxAttempts)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		raw, err := c.caller.generate(ctx, prompt)
		if err != nil {
			err = mapAPIError(err)
			if domain.IsFatal(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		result, err := parseResponse(raw)
		if err != nil {
			// Model output is stochastic; a malformed payload can
			// succeed on a fresh attempt.
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

// ensureCaller initialises the SDK client on first use.
func (c *Classifier) ensureCaller(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.caller != nil {
		return nil
	}

	key, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get API key: %w", err)
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	c.caller = &genaiCaller{cli: cli, model: c.cfg.Model}
	return nil
}

// genaiCaller is the production caller backed by the genai SDK.
type genaiCaller struct {
	cli   *genai.Client
	model string
}

func (g *genaiCaller) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty model response", domain.ErrMalformedResponse)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// mapAPIError translates Gemini API failures onto the domain error taxonomy.
// Credential problems surface as 401, 403 or as a 400 complaining about the
// API key; a 429 that mentions quota means the daily allowance is gone and no
// later call in this run can succeed. Everything else is left as-is and
// treated as transient by the retry loop.
func mapAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	message := strings.ToLower(apiErr.Message)
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	case http.StatusBadRequest:
		if strings.Contains(message, "api key") {
			return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
		}
	case http.StatusTooManyRequests:
		if strings.Contains(message, "quota") {
			return fmt.Errorf("%w: %w", domain.ErrQuotaExhausted, err)
		}
	}
	return err
}
