package domain

// TextSource records which step of the fallback chain produced an opinion's
// analyzable text.
type TextSource string

const (
	// TextSourceInline means the listing response already carried the text.
	TextSourceInline TextSource = "inline"

	// TextSourceDetail means the text came from a per-opinion detail fetch.
	TextSourceDetail TextSource = "detail"
)

// ResolvedText is the text body selected for analysis. It is discarded once
// the opinion has been classified.
type ResolvedText struct {
	// Text is the analyzable body, already truncated to the configured cap.
	Text string

	// Source records where the text came from.
	Source TextSource

	// Length is the rune length of Text after truncation. This is what is
	// recorded in the dataset: the length of the text the model actually saw.
	Length int
}
