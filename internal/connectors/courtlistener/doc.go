// Package courtlistener implements the opinion source for the CourtListener
// REST API (v4).
//
// The client lists recently filed opinions for a single court and fetches
// per-opinion detail records. It implements [driven.OpinionSource].
//
// # Authentication
//
// Every request carries an "Authorization: Token <token>" header. Tokens are
// free and created at courtlistener.com/profile/api-token; the token is
// obtained lazily from the configured token provider on first use.
// Responses with status 401 or 403 are reported as [domain.ErrAuthInvalid].
//
// # Listing
//
// The listing endpoint is queried with:
//
//   - court: the configured court, "scotus" by default
//   - date_filed__gte: today (UTC) minus the lookback window
//   - order_by: -date_filed, most recently filed first
//   - page_size: the configured page size
//
// Cursor pagination is followed via the "next" URL of each page until the
// listing is exhausted, so callers always see the complete window.
//
// # Text Fields
//
// Listing entries usually omit the opinion text; the detail record carries
// it. Where plain_text is empty, the html, html_with_citations and
// html_lawbox variants are stripped to text as fallbacks.
//
// # Rate Limiting
//
// Authenticated clients get 5,000 requests per hour. A token bucket holds
// the request rate near 1/sec, and X-RateLimit headers are tracked so the
// client pauses before the quota runs dry. Throttled (429) responses honour
// Retry-After.
//
// # Error Handling
//
//   - 429 and 5xx responses and network failures: retried with exponential
//     backoff, up to MaxRetries attempts
//   - 401/403: returned immediately as [domain.ErrAuthInvalid]
//   - 404: returned as [domain.ErrNotFound]
package courtlistener
