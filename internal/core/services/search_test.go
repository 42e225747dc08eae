package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinefly-smile/localLens/internal/adapters/driven/storage/memory"
	"github.com/shinefly-smile/localLens/internal/core/domain"
)

func TestSearch_WhitespaceQueryShortCircuits(t *testing.T) {
	store := memory.NewDocumentStore()
	seedPassages(t, store, map[string][]float32{"p1": {1, 0}})
	spy := &spyStore{DocumentStore: store}

	svc := NewSearchService(spy, readyModel(t, newFakeEncoder(2)), NewVectorCache())

	for _, q := range []string{"", "   ", "\t\n "} {
		results, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, spy.keywordCalls, "whitespace query must not touch storage")
	assert.Zero(t, spy.allEmbeddingsCalls, "whitespace query must not touch storage")
}

func TestSearch_ModelUnavailableUsesKeyword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	doc, err := store.UpsertDocument(ctx, "/docs/policy.txt", "policy.txt")
	require.NoError(t, err)
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, []domain.Passage{
		{ID: "p1", DocumentID: doc.ID, Content: "our refund policy lasts thirty days", Index: 0},
		{ID: "p2", DocumentID: doc.ID, Content: "shipping is a different matter entirely", Index: 1},
	}))

	svc := NewSearchService(store, unavailableModel(t), NewVectorCache())

	results, err := svc.Search(ctx, "refund policy")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "our refund policy lasts thirty days", results[0].Content)
	assert.Zero(t, results[0].Score)
	assert.False(t, results[0].IsSemantic)
	assert.Equal(t, "policy.txt", results[0].DocumentName)
	assert.Equal(t, "/docs/policy.txt", results[0].DocumentPath)
}

func TestSearch_SemanticRanksByCosine(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	doc, err := store.UpsertDocument(ctx, "/docs/notes.txt", "notes.txt")
	require.NoError(t, err)
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, []domain.Passage{
		{ID: "best", DocumentID: doc.ID, Content: "the closest passage", Index: 0},
		{ID: "good", DocumentID: doc.ID, Content: "a related passage", Index: 1},
		{ID: "far", DocumentID: doc.ID, Content: "an unrelated passage", Index: 2},
	}))
	require.NoError(t, store.SaveEmbedding(ctx, "best", []float32{1, 0}))
	require.NoError(t, store.SaveEmbedding(ctx, "good", []float32{0.8, 0.6}))
	require.NoError(t, store.SaveEmbedding(ctx, "far", []float32{0, 1}))

	enc := newFakeEncoder(2)
	enc.vectors["query"] = []float32{1, 0}
	svc := NewSearchService(store, readyModel(t, enc), NewVectorCache())

	results, err := svc.Search(ctx, "query")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "the closest passage", results[0].Content)
	assert.Equal(t, "a related passage", results[1].Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.InDelta(t, 0.8, results[1].Score, 1e-6)
	for i, r := range results {
		assert.True(t, r.IsSemantic, "result %d should be semantic", i)
		assert.Equal(t, "notes.txt", r.DocumentName)
	}
}

func TestSearch_EmptyCorpusFallsBackToKeyword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	doc, err := store.UpsertDocument(ctx, "/docs/notes.txt", "notes.txt")
	require.NoError(t, err)
	// Passages exist but no embeddings were ever generated.
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, []domain.Passage{
		{ID: "p1", DocumentID: doc.ID, Content: "keyword match lives here", Index: 0},
	}))

	spy := &spyStore{DocumentStore: store}
	svc := NewSearchService(spy, readyModel(t, newFakeEncoder(2)), NewVectorCache())

	results, err := svc.Search(ctx, "keyword match")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsSemantic)
	assert.Equal(t, 1, spy.keywordCalls, "empty semantic results must fall through to keyword")
}

func TestSearch_EncodeFailureFallsBackToKeyword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	doc, err := store.UpsertDocument(ctx, "/docs/notes.txt", "notes.txt")
	require.NoError(t, err)
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, []domain.Passage{
		{ID: "p1", DocumentID: doc.ID, Content: "fallback target with broken query", Index: 0},
	}))
	require.NoError(t, store.SaveEmbedding(ctx, "p1", []float32{1, 0}))

	enc := newFakeEncoder(2)
	enc.vectors["broken query"] = nil // encode error
	svc := NewSearchService(store, readyModel(t, enc), NewVectorCache())

	results, err := svc.Search(ctx, "broken query")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsSemantic)
}

func TestSearch_SemanticCapsAtLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	doc, err := store.UpsertDocument(ctx, "/docs/big.txt", "big.txt")
	require.NoError(t, err)

	passages := make([]domain.Passage, domain.SemanticLimit+10)
	for i := range passages {
		passages[i] = domain.Passage{
			ID: uuidLike(i), DocumentID: doc.ID,
			Content: "numbered passage with enough content", Index: i,
		}
	}
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, passages))
	for i := range passages {
		require.NoError(t, store.SaveEmbedding(ctx, passages[i].ID, []float32{1, 0}))
	}

	enc := newFakeEncoder(2)
	enc.vectors["anything"] = []float32{1, 0}
	svc := NewSearchService(store, readyModel(t, enc), NewVectorCache())

	results, err := svc.Search(ctx, "anything")
	require.NoError(t, err)
	assert.Len(t, results, domain.SemanticLimit)
}

func TestStats_Delegates(t *testing.T) {
	store := memory.NewDocumentStore()
	seedPassages(t, store, map[string][]float32{"p1": {1, 0}, "p2": {0, 1}})

	svc := NewSearchService(store, unavailableModel(t), NewVectorCache())
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{DocumentCount: 1, PassageCount: 2, EmbeddingCount: 2}, stats)
}

// uuidLike produces distinct deterministic IDs for bulk fixtures.
func uuidLike(i int) string {
	return string(rune('a'+i/26)) + string(rune('a'+i%26))
}
