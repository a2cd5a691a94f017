package driven

import "context"

// TokenProvider provides the credential for an authenticated API call.
// Implementations decide where the credential lives (environment, file).
type TokenProvider interface {
	// GetToken returns a valid credential token.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a credential is available without
	// revealing it.
	IsAuthenticated() bool
}
