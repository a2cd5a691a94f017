package driven

import (
	"context"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// OpinionSource fetches opinion records from the external legal-data API.
type OpinionSource interface {
	// ListRecent returns opinions filed within the trailing window of
	// windowDays days, in the source's listing order, with pagination
	// flattened away.
	ListRecent(ctx context.Context, windowDays int) ([]domain.Opinion, error)

	// GetOpinion fetches one opinion's detail record. Used when the listing
	// entry carried no inline text.
	GetOpinion(ctx context.Context, id int64) (*domain.Opinion, error)

	// Validate checks that the source is reachable and the credential is
	// accepted, without fetching meaningful data.
	Validate(ctx context.Context) error
}
