package domain

import "time"

// Opinion is one opinion record as returned by the record source's listing
// call. Immutable once fetched; owned by the orchestrator for the duration
// of one run.
type Opinion struct {
	// ID is the source's unique identifier for the opinion.
	ID int64

	// ClusterID groups the opinions of one case (lead, concurrences, dissents).
	ClusterID int64

	// DateFiled is the filing date. Only the date portion is meaningful.
	DateFiled time.Time

	// CaseName is the case caption, e.g. "Smith v. Jones".
	CaseName string

	// Author is the authoring judge, or "Per Curiam" for unsigned opinions.
	Author string

	// Type is the opinion's role within its case cluster.
	Type OpinionType

	// Citation is the reporter citation, when one has been assigned.
	Citation string

	// PageCount is the document's page count, 0 when unknown.
	PageCount int

	// URL is the opinion's web page at the source.
	URL string

	// DownloadURL points at the source document, usually a PDF.
	DownloadURL string

	// PlainText is the inline text snippet from the listing response.
	// Often empty; the detail fetch is the fallback.
	PlainText string

	// PerCuriam marks unsigned opinions issued for the whole court.
	PerCuriam bool
}

// OpinionType classifies an opinion's role within its case cluster.
// Values outside this set pass through verbatim from the source.
type OpinionType string

const (
	OpinionCombined          OpinionType = "combined"
	OpinionLead              OpinionType = "lead"
	OpinionPlurality         OpinionType = "plurality"
	OpinionConcurrence       OpinionType = "concurrence"
	OpinionConcurrenceInPart OpinionType = "concurrence-in-part"
	OpinionDissent           OpinionType = "dissent"
)
