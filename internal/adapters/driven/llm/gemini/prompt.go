package gemini

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// promptTemplate is the classification instruction sent with every case. The
// scale anchors and the taxonomy are embedded so the model's choices can be
// validated against the same lists on return.
const promptTemplate = `Analyze this Supreme Court decision and classify its political leaning on a 5-point scale.

Case: %s

Decision excerpt:
%s

Based on this decision, classify it as:
- "Very Conservative" - Strongly aligns with conservative legal principles (strict originalism, significant limitation of federal power, strong protection of gun rights/religious liberty, major restriction of abortion/regulatory power)
- "Conservative" - Moderately aligns with conservative legal principles
- "Center" - Balanced decision or doesn't clearly align with either ideology
- "Liberal" - Moderately aligns with liberal legal principles
- "Very Liberal" - Strongly aligns with liberal legal principles (broad constitutional interpretation, significant expansion of civil rights/federal power/environmental protection, strong restriction of gun rights)

Also identify relevant topic tags from these lists (select ALL that apply):

AMENDMENTS (in order):
%s

OTHER TOPICS (alphabetical):
%s

For each selected tag, write a short note explaining how it applies to this case.

Respond with a single JSON object in exactly this shape:
{
  "classification": "Very Conservative | Conservative | Center | Liberal | Very Liberal",
  "confidence": "High | Medium | Low",
  "tags": ["tag from the lists above", "..."],
  "notes": [{"tag": "tag from the lists above", "explanation": "how it applies to this case"}],
  "summary": "1-2 paragraph summary of the case: what was the legal question, what did the Court decide, and what was the key reasoning?",
  "reasoning": "1-2 sentence explanation of the classification"
}

Be objective and base your analysis only on the legal reasoning in the decision.`

// buildPrompt renders the classification prompt for one case.
func buildPrompt(caseName, text string) string {
	return fmt.Sprintf(promptTemplate,
		caseName,
		text,
		joinTags(domain.AmendmentTags),
		joinTags(domain.TopicTags),
	)
}

func joinTags(tags []domain.Tag) string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = string(tag)
	}
	return strings.Join(names, ";")
}
