package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

func TestUpsertDocument_CreatesOnce(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	first, err := store.UpsertDocument(ctx, "/notes/a.txt", "a.txt")
	require.NoError(t, err)

	second, err := store.UpsertDocument(ctx, "/notes/a.txt", "a.txt")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-import must not duplicate the document")
	assert.False(t, second.ImportedAt.Before(first.ImportedAt))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentCount)
}

func TestReplacePassages_WipesOldPassagesAndEmbeddings(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc, err := store.UpsertDocument(ctx, "/notes/a.txt", "a.txt")
	require.NoError(t, err)

	old := []domain.Passage{{ID: "p1", DocumentID: doc.ID, Content: "old content here", Index: 0}}
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, old))
	require.NoError(t, store.SaveEmbedding(ctx, "p1", []float32{1, 0}))

	replacement := []domain.Passage{
		{ID: "p2", DocumentID: doc.ID, Content: "new content one", Index: 0},
		{ID: "p3", DocumentID: doc.ID, Content: "new content two", Index: 1},
	}
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, replacement))

	_, err = store.GetPassage(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	embs, err := store.AllEmbeddings(ctx)
	require.NoError(t, err)
	assert.Empty(t, embs, "old embeddings must be wiped with their passages")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PassageCount)
}

func TestSaveEmbedding_RequiresPassage(t *testing.T) {
	store := NewDocumentStore()
	err := store.SaveEmbedding(context.Background(), "missing", []float32{1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeywordSearch_CaseSensitiveShortestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc, err := store.UpsertDocument(ctx, "/notes/a.txt", "a.txt")
	require.NoError(t, err)
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, []domain.Passage{
		{ID: "p1", DocumentID: doc.ID, Content: "the refund policy is strict about timing", Index: 0},
		{ID: "p2", DocumentID: doc.ID, Content: "refund policy", Index: 1},
		{ID: "p3", DocumentID: doc.ID, Content: "Refund Policy differs in case", Index: 2},
	}))

	results, err := store.KeywordSearch(ctx, "refund policy", 30)
	require.NoError(t, err)
	require.Len(t, results, 2, "matching is case-sensitive")
	assert.Equal(t, "refund policy", results[0].Content, "shortest passage ranks first")
	for _, r := range results {
		assert.Zero(t, r.Score)
		assert.False(t, r.IsSemantic)
		assert.Equal(t, "a.txt", r.DocumentName)
	}
}

func TestKeywordSearch_Limit(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc, err := store.UpsertDocument(ctx, "/notes/a.txt", "a.txt")
	require.NoError(t, err)

	passages := make([]domain.Passage, 5)
	for i := range passages {
		passages[i] = domain.Passage{
			ID: string(rune('a' + i)), DocumentID: doc.ID,
			Content: "needle in a haystack of text", Index: i,
		}
	}
	require.NoError(t, store.ReplacePassages(ctx, doc.ID, passages))

	results, err := store.KeywordSearch(ctx, "needle", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}
