package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/vector"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// ScoredPassage is one ranked cache hit.
type ScoredPassage struct {
	// PassageID identifies the matched passage.
	PassageID string

	// Score is the dot product against the query vector. Both sides are
	// L2-normalized, so this equals cosine similarity.
	Score float64
}

// VectorCache is an in-memory projection of the persisted embeddings,
// rebuilt lazily after invalidation. It is never a source of truth:
// whenever valid, its entry set is exactly the persisted embedding set
// at the time of the last rebuild.
//
// Readers share the lock once the cache is valid; a single writer holds
// it during rebuild or invalidation. There is no partial invalidation -
// any persisted write invalidates the whole cache, trading rebuild cost
// for simplicity.
type VectorCache struct {
	mu      sync.RWMutex
	valid   bool
	entries []domain.Embedding
}

// NewVectorCache creates an empty, invalid cache.
func NewVectorCache() *VectorCache {
	return &VectorCache{}
}

// EnsureValid makes the cache consistent with the store. The fast path
// is a read-locked validity check; the slow path reloads every persisted
// embedding and replaces the entry set atomically.
func (c *VectorCache) EnsureValid(ctx context.Context, store driven.DocumentStore) error {
	c.mu.RLock()
	valid := c.valid
	c.mu.RUnlock()
	if valid {
		return nil
	}

	entries, err := store.AllEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding vector cache: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.valid = true
	c.mu.Unlock()

	logger.Debug("Vector cache rebuilt: %d entries", len(entries))
	return nil
}

// Invalidate clears validity and entries. Called exactly once after any
// batch of persisted writes, never mid-batch.
func (c *VectorCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.entries = nil
	c.mu.Unlock()
	logger.Debug("Vector cache invalidated")
}

// Valid reports whether the cache currently mirrors the store.
func (c *VectorCache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Len returns the number of cached entries.
func (c *VectorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TopK scores every cached vector against query by dot product and
// returns the k best, descending. Ties keep insertion order. Call only
// after EnsureValid has returned.
func (c *VectorCache) TopK(query []float32, k int) []ScoredPassage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	scored := make([]ScoredPassage, 0, len(c.entries))
	for _, e := range c.entries {
		scored = append(scored, ScoredPassage{
			PassageID: e.PassageID,
			Score:     vector.Dot(query, e.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored
}
