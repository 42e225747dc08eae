package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/vector"
)

// --- Mock implementations ---

// spyStore wraps a store and counts the calls the services make.
type spyStore struct {
	driven.DocumentStore
	allEmbeddingsCalls int
	keywordCalls       int
}

func (s *spyStore) AllEmbeddings(ctx context.Context) ([]domain.Embedding, error) {
	s.allEmbeddingsCalls++
	return s.DocumentStore.AllEmbeddings(ctx)
}

func (s *spyStore) KeywordSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	s.keywordCalls++
	return s.DocumentStore.KeywordSearch(ctx, query, limit)
}

// fakeEncoder implements driven.Encoder with fixed vectors per input.
// Unknown inputs get a deterministic normalized vector; entries mapped
// to nil report an encode failure.
type fakeEncoder struct {
	vectors map[string][]float32
	dims    int
	closed  bool
}

func newFakeEncoder(dims int) *fakeEncoder {
	return &fakeEncoder{vectors: make(map[string][]float32), dims: dims}
}

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	if vec, ok := f.vectors[text]; ok {
		if vec == nil {
			return nil, errors.New("inference failed")
		}
		return vec, nil
	}
	// Deterministic pseudo-embedding derived from the text bytes.
	vec := make([]float32, f.dims)
	for i, b := range []byte(text) {
		vec[i%f.dims] += float32(b)
	}
	return vector.Normalize(vec), nil
}

func (f *fakeEncoder) Dimensions() int { return f.dims }

func (f *fakeEncoder) Close() error {
	f.closed = true
	return nil
}

// fakeFileSource implements driven.FileSource over fixtures.
type fakeFileSource struct {
	entries  []driven.FileEntry
	contents map[string]string
	broken   map[string]bool
}

func (f *fakeFileSource) List(string) ([]driven.FileEntry, error) {
	return f.entries, nil
}

func (f *fakeFileSource) Read(path string) (string, error) {
	if f.broken[path] {
		return "", errors.New("invalid text encoding")
	}
	content, ok := f.contents[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

// progressRecorder captures import progress notifications.
type progressRecorder struct {
	events []driven.ImportProgress
}

func (r *progressRecorder) Notify(p driven.ImportProgress) {
	r.events = append(r.events, p)
}

// --- Helpers ---

// artifactPair creates dummy model and tokenizer files on disk.
func artifactPair(t *testing.T) (modelPath, tokenizerPath string) {
	t.Helper()
	dir := t.TempDir()
	modelPath = filepath.Join(dir, "model.onnx")
	tokenizerPath = filepath.Join(dir, "tokenizer.json")
	require.NoError(t, os.WriteFile(modelPath, []byte("model"), 0600))
	require.NoError(t, os.WriteFile(tokenizerPath, []byte("{}"), 0600))
	return modelPath, tokenizerPath
}

// readyModel returns a ModelManager in the ready state backed by enc.
func readyModel(t *testing.T, enc driven.Encoder) *ModelManager {
	t.Helper()
	model, tok := artifactPair(t)
	m := NewModelManager()
	done := m.LoadInBackground(model, tok, func(_, _ string) (driven.Encoder, error) {
		return enc, nil
	})
	<-done
	require.True(t, m.ModelStatus().Ready())
	return m
}

// unavailableModel returns a ModelManager whose artifacts are missing.
func unavailableModel(t *testing.T) *ModelManager {
	t.Helper()
	m := NewModelManager()
	done := m.LoadInBackground("/nonexistent/model.onnx", "/nonexistent/tokenizer.json", nil)
	<-done
	require.Equal(t, domain.StateUnavailable, m.ModelStatus().State)
	return m
}
