package driving

import (
	"context"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

// ImportService ingests a folder of text files into the corpus.
type ImportService interface {
	// ImportFolder walks folder, segments and persists every matching
	// file, embeds passages when the model is ready and invalidates the
	// vector cache once at the end. Unreadable files are counted as
	// skipped, not fatal.
	ImportFolder(ctx context.Context, folder string) (domain.ImportResult, error)
}

// StatusReporter exposes the model availability signal.
type StatusReporter interface {
	// ModelStatus returns the current model load status.
	ModelStatus() domain.ModelStatus
}
