package interfaces

import (
	"context"

	"github.com/ternarybob/dirigo/internal/models"
)

// RetrievalIndex answers nearest-passage queries over an embedded document
// set. The index is scope-local: it only ever contains passages from the
// directives it was built with.
type RetrievalIndex interface {
	// Query returns the top-k passages for a free-text question,
	// relevance-ranked with the highest score first.
	Query(ctx context.Context, question string, k int) ([]models.RetrievalPassage, error)

	// Size returns the number of indexed passages
	Size() int
}

// IndexBuilder builds and caches retrieval indexes for scoped document sets.
// Ensure is a read-mostly cache: rebuilding is triggered only when the
// (document-set fingerprint, region) key changes, and a rebuild fully
// replaces the previous index.
type IndexBuilder interface {
	Ensure(ctx context.Context, directives []*models.Directive, region string) (RetrievalIndex, error)
}
