// Package memory provides an in-memory DocumentStore used by tests and
// as a reference implementation of the store contract.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu         sync.RWMutex
	documents  map[string]domain.Document // by ID
	byPath     map[string]string          // path -> ID
	passages   map[string]domain.Passage  // by ID
	embeddings map[string][]float32       // by passage ID
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:  make(map[string]domain.Document),
		byPath:     make(map[string]string),
		passages:   make(map[string]domain.Passage),
		embeddings: make(map[string][]float32),
	}
}

// UpsertDocument looks up or creates the document for a path.
func (s *DocumentStore) UpsertDocument(_ context.Context, path, name string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byPath[path]; ok {
		doc := s.documents[id]
		doc.Name = name
		doc.ImportedAt = time.Now().UTC()
		s.documents[id] = doc
		return &doc, nil
	}

	doc := domain.Document{
		ID:         uuid.New().String(),
		Path:       path,
		Name:       name,
		ImportedAt: time.Now().UTC(),
	}
	s.documents[doc.ID] = doc
	s.byPath[path] = doc.ID
	return &doc, nil
}

// ReplacePassages wipes a document's embeddings and passages and inserts
// the given passages.
func (s *DocumentStore) ReplacePassages(_ context.Context, documentID string, passages []domain.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.passages {
		if p.DocumentID == documentID {
			delete(s.passages, id)
			delete(s.embeddings, id)
		}
	}
	for _, p := range passages {
		s.passages[p.ID] = p
	}
	return nil
}

// SaveEmbedding stores the vector for a passage.
func (s *DocumentStore) SaveEmbedding(_ context.Context, passageID string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.passages[passageID]; !ok {
		return domain.ErrNotFound
	}
	s.embeddings[passageID] = append([]float32(nil), vec...)
	return nil
}

// AllEmbeddings returns every persisted (passage, vector) pair.
func (s *DocumentStore) AllEmbeddings(_ context.Context) ([]domain.Embedding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Embedding, 0, len(s.embeddings))
	for id, vec := range s.embeddings {
		out = append(out, domain.Embedding{PassageID: id, Vector: append([]float32(nil), vec...)})
	}
	// Deterministic order for tests.
	sort.Slice(out, func(i, j int) bool { return out[i].PassageID < out[j].PassageID })
	return out, nil
}

// GetPassage retrieves a passage by ID.
func (s *DocumentStore) GetPassage(_ context.Context, id string) (*domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.passages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// KeywordSearch performs case-sensitive substring matching over passage
// content, shortest passages first.
func (s *DocumentStore) KeywordSearch(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []domain.Passage
	for _, p := range s.passages {
		if strings.Contains(p.Content, query) {
			hits = append(hits, p)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if len(hits[i].Content) != len(hits[j].Content) {
			return len(hits[i].Content) < len(hits[j].Content)
		}
		return hits[i].ID < hits[j].ID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, p := range hits {
		doc := s.documents[p.DocumentID]
		results = append(results, domain.SearchResult{
			Content:      p.Content,
			DocumentName: doc.Name,
			DocumentPath: doc.Path,
			PassageIndex: p.Index,
			Score:        0,
			IsSemantic:   false,
		})
	}
	return results, nil
}

// Stats reports document, passage and embedding counts.
func (s *DocumentStore) Stats(_ context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Stats{
		DocumentCount:  len(s.documents),
		PassageCount:   len(s.passages),
		EmbeddingCount: len(s.embeddings),
	}, nil
}

// Close is a no-op for the in-memory store.
func (s *DocumentStore) Close() error {
	return nil
}
