package cli

import (
	"context"
	"errors"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

// mockSearchService returns canned results.
type mockSearchService struct {
	results []domain.SearchResult
	stats   domain.Stats
	err     error
	queries []string
}

func (m *mockSearchService) Search(_ context.Context, query string) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	return m.results, m.err
}

func (m *mockSearchService) Stats(context.Context) (domain.Stats, error) {
	return m.stats, m.err
}

// mockImportService records imported folders.
type mockImportService struct {
	result  domain.ImportResult
	err     error
	folders []string
}

func (m *mockImportService) ImportFolder(_ context.Context, folder string) (domain.ImportResult, error) {
	m.folders = append(m.folders, folder)
	return m.result, m.err
}

// mockStatusReporter reports a fixed model status.
type mockStatusReporter struct {
	status domain.ModelStatus
}

func (m *mockStatusReporter) ModelStatus() domain.ModelStatus {
	return m.status
}

var errMock = errors.New("mock failure")

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldSearch := searchService
	oldImport := importService
	oldStatus := statusReporter
	oldLoaded := modelLoaded

	searchService = &mockSearchService{
		results: []domain.SearchResult{
			{
				Content:      "a passage about mock things",
				DocumentName: "mock.txt",
				DocumentPath: "/docs/mock.txt",
				PassageIndex: 0,
				Score:        0.95,
				IsSemantic:   true,
			},
		},
		stats: domain.Stats{DocumentCount: 2, PassageCount: 5, EmbeddingCount: 5},
	}
	importService = &mockImportService{
		result: domain.ImportResult{FilesImported: 3, PassagesCreated: 9, EmbeddingsGenerated: 9},
	}
	statusReporter = &mockStatusReporter{
		status: domain.ModelStatus{State: domain.StateReady},
	}

	loaded := make(chan struct{})
	close(loaded)
	modelLoaded = loaded

	return func() {
		searchService = oldSearch
		importService = oldImport
		statusReporter = oldStatus
		modelLoaded = oldLoaded
	}
}
