package domain

import (
	"fmt"
	"strings"
)

// Classification is the normalized output of the classification step for one
// opinion. Produced once per candidate and consumed immediately into a Row.
type Classification struct {
	// Leaning is the five-point ideological label.
	Leaning Leaning

	// Confidence is the model's stated confidence.
	Confidence Confidence

	// Tags are the selected taxonomy tags in response order, deduplicated.
	Tags []Tag

	// Notes maps each selected tag to a short explanation of how it applies.
	// The key set always equals the Tags set.
	Notes map[Tag]string

	// Summary is a one to two paragraph summary of the case.
	Summary string

	// Reasoning explains the leaning label in a sentence or two.
	Reasoning string
}

// TagNote pairs a raw tag name with its explanation, as produced by the
// classification service before validation.
type TagNote struct {
	Tag         string
	Explanation string
}

// NewClassification validates raw classifier output and normalizes it into a
// Classification. Unknown tags are dropped together with their notes, notes
// without a matching selected tag are dropped, and selected tags left without
// a usable note are dropped, so the tag set and the note key set always
// coincide. Dropped names are returned for logging. A leaning or confidence
// outside its scale wraps ErrMalformedResponse: the candidate has failed and
// the caller skips it.
func NewClassification(
	leaning, confidence string,
	tags []string,
	notes []TagNote,
	summary, reasoning string,
) (*Classification, []string, error) {
	lean, err := ParseLeaning(leaning)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: classification %q", ErrMalformedResponse, leaning)
	}
	conf, err := ParseConfidence(confidence)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: confidence %q", ErrMalformedResponse, confidence)
	}

	var dropped []string

	// First valid note per tag wins.
	noteFor := make(map[Tag]string, len(notes))
	for _, n := range notes {
		tag, err := ParseTag(n.Tag)
		if err != nil {
			dropped = append(dropped, n.Tag)
			continue
		}
		explanation := strings.TrimSpace(n.Explanation)
		if explanation == "" {
			continue
		}
		if _, ok := noteFor[tag]; !ok {
			noteFor[tag] = explanation
		}
	}

	selected := make([]Tag, 0, len(tags))
	seen := make(map[Tag]struct{}, len(tags))
	for _, raw := range tags {
		tag, err := ParseTag(raw)
		if err != nil {
			dropped = append(dropped, raw)
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		selected = append(selected, tag)
	}

	// Intersect both ways so tags and notes describe the same set.
	final := make([]Tag, 0, len(selected))
	finalNotes := make(map[Tag]string, len(selected))
	for _, tag := range selected {
		note, ok := noteFor[tag]
		if !ok {
			dropped = append(dropped, string(tag))
			continue
		}
		final = append(final, tag)
		finalNotes[tag] = note
	}
	for tag := range noteFor {
		if _, ok := seen[tag]; !ok {
			dropped = append(dropped, string(tag))
		}
	}

	return &Classification{
		Leaning:    lean,
		Confidence: conf,
		Tags:       final,
		Notes:      finalNotes,
		Summary:    strings.TrimSpace(summary),
		Reasoning:  strings.TrimSpace(reasoning),
	}, dropped, nil
}
