package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
)

// Environment variables holding the service credentials.
const (
	// CourtListenerTokenVar holds the CourtListener API token.
	CourtListenerTokenVar = "COURTLISTENER_TOKEN"

	// GoogleAPIKeyVar holds the Gemini API key.
	GoogleAPIKeyVar = "GOOGLE_API_KEY"
)

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads a static credential from an environment variable.
// Values pasted into shell profiles and .env files often carry stray quotes
// and whitespace, so the raw value is cleaned before use.
type EnvTokenProvider struct {
	envVar string
}

// NewEnvTokenProvider creates a token provider backed by the named
// environment variable.
func NewEnvTokenProvider(envVar string) *EnvTokenProvider {
	return &EnvTokenProvider{envVar: envVar}
}

// GetToken returns the cleaned credential. A missing or blank variable is a
// credential failure: no later call in the run can authenticate either.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	token := cleanValue(os.Getenv(p.envVar))
	if token == "" {
		return "", fmt.Errorf("%w: %s is not set", domain.ErrAuthInvalid, p.envVar)
	}
	return token, nil
}

// IsAuthenticated reports whether the variable holds a usable value.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	return cleanValue(os.Getenv(p.envVar)) != ""
}

// EnvVar returns the environment variable the provider reads.
func (p *EnvTokenProvider) EnvVar() string {
	return p.envVar
}

// cleanValue strips whitespace and the quote characters that commonly wrap
// pasted credentials.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, `"`, "")
	v = strings.ReplaceAll(v, "'", "")
	return strings.TrimSpace(v)
}
