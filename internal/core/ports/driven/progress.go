package driven

// ImportPhase names the stage an import progress notification refers to.
type ImportPhase string

const (
	// PhaseReading means the file is being read and segmented.
	PhaseReading ImportPhase = "reading"

	// PhaseEmbedding means the file's passages are being embedded.
	PhaseEmbedding ImportPhase = "embedding"

	// PhaseDone means the whole folder has been processed.
	PhaseDone ImportPhase = "done"
)

// ImportProgress is one best-effort progress notification. There is no
// acknowledgment contract; sinks must not block the import.
type ImportProgress struct {
	// Current is the 1-based index of the file being processed.
	Current int

	// Total is the number of files in the batch.
	Total int

	// File is the display name of the current file.
	File string

	// Phase is the current processing stage.
	Phase ImportPhase

	// Passage and PassageCount carry optional sub-progress while
	// embedding; both zero outside PhaseEmbedding.
	Passage      int
	PassageCount int
}

// ProgressSink receives import progress notifications.
// The zero-value-usable NopProgress discards them.
type ProgressSink interface {
	Notify(p ImportProgress)
}

// NopProgress is a ProgressSink that discards notifications.
type NopProgress struct{}

// Notify implements ProgressSink.
func (NopProgress) Notify(ImportProgress) {}
