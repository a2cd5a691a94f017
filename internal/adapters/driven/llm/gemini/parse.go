package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// classificationJSON is the wire shape the prompt instructs the model to
// return.
type classificationJSON struct {
	Classification string     `json:"classification"`
	Confidence     string     `json:"confidence"`
	Tags           []string   `json:"tags"`
	Notes          []noteJSON `json:"notes"`
	Summary        string     `json:"summary"`
	Reasoning      string     `json:"reasoning"`
}

type noteJSON struct {
	Tag         string `json:"tag"`
	Explanation string `json:"explanation"`
}

// parseResponse decodes model output into a normalized Classification. The
// output is untrusted: code fences are stripped, tag names outside the
// taxonomy are dropped with their notes, and a leaning or confidence outside
// its scale fails the candidate.
func parseResponse(raw string) (*domain.Classification, error) {
	payload := stripFences(raw)

	var wire classificationJSON
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	notes := make([]domain.TagNote, len(wire.Notes))
	for i, n := range wire.Notes {
		notes[i] = domain.TagNote{Tag: n.Tag, Explanation: n.Explanation}
	}

	result, dropped, err := domain.NewClassification(
		wire.Classification, wire.Confidence, wire.Tags, notes,
		wire.Summary, wire.Reasoning,
	)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		logger.Warn("Dropped %d unrecognised tag name(s) from model response: %s",
			len(dropped), strings.Join(dropped, ", "))
	}
	return result, nil
}

// stripFences removes a surrounding markdown code fence, which some model
// revisions add even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
