package driven

import (
	"context"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

// DocumentStore persists documents, passages and embeddings.
// Backed by SQLite; the persistent store is the single source of truth,
// the in-process vector cache is only a disposable projection of it.
type DocumentStore interface {
	// UpsertDocument looks up or creates the document for a path.
	// An existing document keeps its identity and gets a fresh
	// ImportedAt timestamp; re-import never duplicates the row.
	UpsertDocument(ctx context.Context, path, name string) (*domain.Document, error)

	// ReplacePassages atomically wipes a document's embeddings and
	// passages and inserts the given passages in order. Runs in a
	// single transaction so a crash cannot leave a half-replaced
	// document behind.
	ReplacePassages(ctx context.Context, documentID string, passages []domain.Passage) error

	// SaveEmbedding stores the vector for a passage (at most one per
	// passage; replaced on conflict).
	SaveEmbedding(ctx context.Context, passageID string, vec []float32) error

	// AllEmbeddings returns every persisted (passage, vector) pair.
	// Used to rebuild the vector cache after invalidation.
	AllEmbeddings(ctx context.Context) ([]domain.Embedding, error)

	// GetPassage retrieves a passage by ID.
	GetPassage(ctx context.Context, id string) (*domain.Passage, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// KeywordSearch performs case-sensitive substring matching over
	// passage content, shortest passages first, capped at limit.
	KeywordSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Stats reports document, passage and embedding counts.
	Stats(ctx context.Context) (domain.Stats, error)

	// Close releases the underlying connection.
	Close() error
}
