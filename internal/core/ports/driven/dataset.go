package driven

import (
	"context"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// DatasetStore persists classified opinions to the append-only dataset.
type DatasetStore interface {
	// KnownIDs returns the set of opinion ids already present in the
	// dataset. A dataset that does not exist yet yields an empty set.
	KnownIDs(ctx context.Context) (map[int64]struct{}, error)

	// Append writes one row, creating the dataset with its header on the
	// first write. Each call commits a complete row; existing rows are
	// never rewritten or reordered.
	Append(ctx context.Context, row *domain.Row) error
}
