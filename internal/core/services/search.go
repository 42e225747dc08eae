package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/ports/driving"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks passages for a query: semantic cosine ranking over
// the vector cache when the model is ready, substring keyword fallback
// otherwise or when semantic ranking comes back empty. Semantic misses
// must not be mistaken for "no matches" unless keyword search confirms it.
type SearchService struct {
	store driven.DocumentStore
	model *ModelManager
	cache *VectorCache
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.DocumentStore, model *ModelManager, cache *VectorCache) *SearchService {
	return &SearchService{
		store: store,
		model: model,
		cache: cache,
	}
}

// Search implements driving.SearchService.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	logger.Debug("Query: %q", query)

	if s.model.ModelStatus().Ready() {
		results, err := s.semanticSearch(ctx, query)
		switch {
		case err != nil:
			logger.Warn("Semantic search failed, falling back to keywords: %v", err)
		case len(results) > 0:
			logger.Info("Semantic search: %d results", len(results))
			return results, nil
		default:
			logger.Debug("Semantic search empty, falling back to keywords")
		}
	} else {
		logger.Debug("Model status %q, keyword search only", s.model.ModelStatus())
	}

	results, err := s.store.KeywordSearch(ctx, query, domain.KeywordLimit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	logger.Info("Keyword search: %d results", len(results))
	return results, nil
}

// semanticSearch encodes the query, ensures the cache mirrors the store
// and hydrates the top-scoring passages.
func (s *SearchService) semanticSearch(ctx context.Context, query string) ([]domain.SearchResult, error) {
	queryVec, err := s.model.Encode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}
	logger.Debug("Query vector: %d dimensions", len(queryVec))

	if err := s.cache.EnsureValid(ctx, s.store); err != nil {
		return nil, err
	}

	top := s.cache.TopK(queryVec, domain.SemanticLimit)
	logger.Debug("Ranked %d cached vectors, kept %d", s.cache.Len(), len(top))

	results := make([]domain.SearchResult, 0, len(top))
	for _, hit := range top {
		res, err := s.hydrate(ctx, hit)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Passage deleted between rebuild and hydration; skip.
				continue
			}
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// hydrate resolves a scored cache hit into a full search result.
func (s *SearchService) hydrate(ctx context.Context, hit ScoredPassage) (*domain.SearchResult, error) {
	passage, err := s.store.GetPassage(ctx, hit.PassageID)
	if err != nil {
		return nil, fmt.Errorf("get passage %s: %w", hit.PassageID, err)
	}

	doc, err := s.store.GetDocument(ctx, passage.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", passage.DocumentID, err)
	}

	return &domain.SearchResult{
		Content:      passage.Content,
		DocumentName: doc.Name,
		DocumentPath: doc.Path,
		PassageIndex: passage.Index,
		Score:        hit.Score,
		IsSemantic:   true,
	}, nil
}

// Stats implements driving.SearchService.
func (s *SearchService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.Stats(ctx)
}
