package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/ports/driving"
	"github.com/shinefly-smile/localLens/internal/logger"
	"github.com/shinefly-smile/localLens/internal/segmenter"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// progressEvery is the passage interval between embedding sub-progress
// notifications, to keep the event volume down on large files.
const progressEvery = 5

// ImportService ingests a folder of text files: walk, read, segment,
// persist, embed, then invalidate the vector cache exactly once.
type ImportService struct {
	store    driven.DocumentStore
	files    driven.FileSource
	model    *ModelManager
	cache    *VectorCache
	progress driven.ProgressSink
}

// NewImportService creates a new import service. progress may be nil,
// in which case notifications are discarded.
func NewImportService(
	store driven.DocumentStore,
	files driven.FileSource,
	model *ModelManager,
	cache *VectorCache,
	progress driven.ProgressSink,
) *ImportService {
	if progress == nil {
		progress = driven.NopProgress{}
	}
	return &ImportService{
		store:    store,
		files:    files,
		model:    model,
		cache:    cache,
		progress: progress,
	}
}

// ImportFolder implements driving.ImportService.
//
// Per file: read (unreadable files are skipped, not fatal), look up or
// create the document by path, transactionally replace its passages,
// then embed each passage while the model is ready. Passages are
// persisted in segmentation order before any of their embeddings, and
// the cache is invalidated only after the whole batch.
func (s *ImportService) ImportFolder(ctx context.Context, folder string) (domain.ImportResult, error) {
	logger.Section("Folder Import")
	logger.Debug("Root: %s", folder)

	var result domain.ImportResult

	entries, err := s.files.List(folder)
	if err != nil {
		return result, fmt.Errorf("listing %s: %w", folder, err)
	}
	total := len(entries)
	logger.Info("Found %d candidate files", total)

	modelReady := s.model.ModelStatus().Ready()
	if !modelReady {
		logger.Debug("Model status %q: importing without embeddings", s.model.ModelStatus())
	}

	for i, entry := range entries {
		s.progress.Notify(driven.ImportProgress{
			Current: i + 1,
			Total:   total,
			File:    entry.Name,
			Phase:   driven.PhaseReading,
		})

		content, err := s.files.Read(entry.Path)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Path, err)
			result.FilesSkipped++
			continue
		}

		generated, created, err := s.importFile(ctx, i+1, total, entry, content, modelReady)
		if err != nil {
			return result, err
		}
		result.FilesImported++
		result.PassagesCreated += created
		result.EmbeddingsGenerated += generated
	}

	// Invalidation happens-after every write of this batch, exactly once.
	s.cache.Invalidate()

	s.progress.Notify(driven.ImportProgress{
		Current: total,
		Total:   total,
		Phase:   driven.PhaseDone,
	})

	logger.Info("Import done: %d files, %d passages, %d embeddings, %d skipped",
		result.FilesImported, result.PassagesCreated, result.EmbeddingsGenerated, result.FilesSkipped)
	return result, nil
}

// importFile persists one file's document, passages and embeddings.
func (s *ImportService) importFile(
	ctx context.Context,
	current, total int,
	entry driven.FileEntry,
	content string,
	modelReady bool,
) (embeddings, created int, err error) {
	doc, err := s.store.UpsertDocument(ctx, entry.Path, entry.Name)
	if err != nil {
		return 0, 0, fmt.Errorf("upserting document %s: %w", entry.Path, err)
	}

	segments := segmenter.Segment(content)
	passages := make([]domain.Passage, len(segments))
	for i, text := range segments {
		passages[i] = domain.Passage{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			Index:      i,
		}
	}

	// Wipes old embeddings and passages and inserts the new passages in
	// one transaction; re-import replaces, never appends.
	if err := s.store.ReplacePassages(ctx, doc.ID, passages); err != nil {
		return 0, 0, fmt.Errorf("replacing passages for %s: %w", entry.Path, err)
	}
	logger.Debug("%s: %d passages", entry.Name, len(passages))

	if !modelReady {
		return 0, len(passages), nil
	}

	for i, p := range passages {
		vec, err := s.model.Encode(ctx, p.Content)
		if err != nil {
			// Best-effort: the passage stays searchable by keyword, the
			// omission is visible through the embeddings counter.
			logger.Debug("Embedding failed for passage %d of %s: %v", p.Index, entry.Name, err)
		} else if err := s.store.SaveEmbedding(ctx, p.ID, vec); err != nil {
			return embeddings, len(passages), fmt.Errorf("saving embedding for %s: %w", p.ID, err)
		} else {
			embeddings++
		}

		if i%progressEvery == 0 || i == len(passages)-1 {
			s.progress.Notify(driven.ImportProgress{
				Current:      current,
				Total:        total,
				File:         entry.Name,
				Phase:        driven.PhaseEmbedding,
				Passage:      i + 1,
				PassageCount: len(passages),
			})
		}
	}

	return embeddings, len(passages), nil
}
