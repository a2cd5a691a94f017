package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

const (
	// DefaultMaxTextChars caps the text submitted for classification.
	// Anything beyond the cap is cut off, not summarized.
	DefaultMaxTextChars = 15000

	// MinTextChars is the shortest body considered worth classifying.
	// Listings often carry a stub where the full text is not yet loaded.
	MinTextChars = 100
)

// TextResolver selects the analyzable text for a candidate opinion.
// It prefers the text already present on the listing entry and falls
// back to a detail fetch when the listing carried none.
type TextResolver struct {
	source   driven.OpinionSource
	maxChars int
}

// NewTextResolver creates a resolver that reads fallbacks from source.
// maxChars <= 0 selects DefaultMaxTextChars.
func NewTextResolver(source driven.OpinionSource, maxChars int) *TextResolver {
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}
	return &TextResolver{source: source, maxChars: maxChars}
}

// Resolve returns the text to classify for op, truncated to the configured
// cap. Length on the result is the rune count after truncation. When neither
// the listing entry nor the detail record carries a usable body, Resolve
// returns domain.ErrNoText. Errors from the detail fetch are passed through
// wrapped, so an authentication failure keeps its fatal classification.
func (r *TextResolver) Resolve(ctx context.Context, op *domain.Opinion) (*domain.ResolvedText, error) {
	if text := strings.TrimSpace(op.PlainText); usable(text) {
		return r.truncate(text, domain.TextSourceInline), nil
	}

	logger.Debug("Opinion %d has no inline text, fetching detail", op.ID)
	detail, err := r.source.GetOpinion(ctx, op.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch opinion %d detail: %w", op.ID, err)
	}

	if text := strings.TrimSpace(detail.PlainText); usable(text) {
		return r.truncate(text, domain.TextSourceDetail), nil
	}
	return nil, fmt.Errorf("%w: opinion %d", domain.ErrNoText, op.ID)
}

// usable reports whether text is long enough to classify.
func usable(text string) bool {
	return utf8.RuneCountInString(text) >= MinTextChars
}

// truncate enforces the character cap as a hard cutoff.
func (r *TextResolver) truncate(text string, source domain.TextSource) *domain.ResolvedText {
	runes := []rune(text)
	if len(runes) > r.maxChars {
		logger.Debug("Truncating text from %d to %d characters", len(runes), r.maxChars)
		runes = runes[:r.maxChars]
		text = string(runes)
	}
	return &domain.ResolvedText{Text: text, Source: source, Length: len(runes)}
}
