package driving

import (
	"context"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

// SearchService answers natural-language queries over the imported corpus.
type SearchService interface {
	// Search ranks passages for a query: semantic cosine ranking when the
	// model is ready, substring keyword fallback otherwise or when
	// semantic ranking comes back empty. A whitespace-only query returns
	// an empty result set without touching storage.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Stats reports corpus counters.
	Stats(ctx context.Context) (domain.Stats, error)
}
