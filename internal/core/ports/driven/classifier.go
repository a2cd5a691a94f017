package driven

import (
	"context"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// Classifier produces a normalized classification for one opinion's text.
type Classifier interface {
	// Classify sends the case text to the model and parses the structured
	// response. Transient service failures are retried internally; errors
	// wrapping domain.ErrAuthInvalid or domain.ErrQuotaExhausted mean no
	// later call can succeed either.
	Classify(ctx context.Context, caseName, text string) (*domain.Classification, error)
}
