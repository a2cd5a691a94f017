package courtlistener

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// --- Test fixtures ---

// testTokenProvider implements driven.TokenProvider.
type testTokenProvider struct {
	token string
	err   error
}

func (p *testTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.token, nil
}

func (p *testTokenProvider) IsAuthenticated() bool { return p.err == nil }

// newTestClient creates a client against a test server, with throttling and
// retry backoff collapsed so tests run instantly.
func newTestClient(serverURL string) *Client {
	c := NewClient(Config{
		BaseURL: serverURL + "/api/rest/v4/",
		Timeout: 5 * time.Second,
	}, &testTokenProvider{token: "test-token"})
	c.retryDelay = time.Millisecond
	c.rateLimiter.bucket = rate.NewLimiter(rate.Inf, 0)
	return c
}

const emptyListing = `{"count": 0, "next": null, "previous": null, "results": []}`

// --- Tests ---

func TestClient_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	require.NoError(t, client.Validate(context.Background()))

	assert.Equal(t, "Token test-token", gotAuth)
	assert.Equal(t, UserAgent, gotAgent)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_TokenProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/api/rest/v4/"}, &testTokenProvider{
		err: fmt.Errorf("%w: COURTLISTENER_TOKEN is not set", domain.ErrAuthInvalid),
	})

	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestClient_Unauthorized(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid token."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, requests, "auth failures must not be retried")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid token.", apiErr.Message)
}

func TestClient_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"detail": "You do not have permission."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.True(t, IsForbidden(err))
}

func TestClient_RetriesServerError(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestClient_RetriesThrottledResponse(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set(HeaderRetryAfter, "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestClient_RetriesExhausted(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.Equal(t, MaxRetries+1, requests)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_ThrottledRetriesExhausted(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Header().Set(HeaderRetryAfter, "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.Equal(t, MaxRetries+1, requests)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, IsRateLimited(err))
	assert.False(t, domain.IsFatal(err), "exhausted throttling must not abort the run")
}

func TestClient_NoRetryOnBadRequest(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail": "Invalid cursor."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, requests)
	assert.NotErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthInvalid},
		{"forbidden", http.StatusForbidden, domain.ErrAuthInvalid},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"server error", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statusError(tt.status, "https://example.org/api/", []byte(`{"detail": "nope"}`))

			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "Invalid token.", errorDetail([]byte(`{"detail": "Invalid token."}`)))
	assert.Equal(t, "<html>gateway</html>", errorDetail([]byte(`<html>gateway</html>`)))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &RateLimitError{}, true},
		{"server error", &APIError{StatusCode: 503}, true},
		{"wrapped auth error", statusError(401, "u", nil), false},
		{"not found", &APIError{StatusCode: 404}, false},
		{"network failure", &url.Error{Op: "Get", URL: "u", Err: errors.New("connection refused")}, true},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
