package domain

// SemanticLimit is the maximum number of semantic search results.
const SemanticLimit = 20

// KeywordLimit is the maximum number of keyword fallback results.
const KeywordLimit = 30

// SearchResult represents a single search hit.
type SearchResult struct {
	// Content is the matched passage text.
	Content string `json:"content"`

	// DocumentName is the display name of the owning document.
	DocumentName string `json:"documentName"`

	// DocumentPath is the filesystem path of the owning document.
	DocumentPath string `json:"documentPath"`

	// PassageIndex is the passage's position within its document.
	PassageIndex int `json:"passageIndex"`

	// Score is the cosine similarity for semantic hits, 0 for keyword hits.
	Score float64 `json:"score"`

	// IsSemantic distinguishes semantic hits from keyword fallback hits.
	IsSemantic bool `json:"isSemantic"`
}

// ImportResult aggregates the counters of one folder import.
type ImportResult struct {
	// FilesImported is the number of files read and persisted.
	FilesImported int `json:"filesImported"`

	// PassagesCreated is the total number of passages persisted.
	PassagesCreated int `json:"passagesCreated"`

	// FilesSkipped counts files that could not be read as text.
	FilesSkipped int `json:"filesSkipped"`

	// EmbeddingsGenerated counts passages that received a vector.
	EmbeddingsGenerated int `json:"embeddingsGenerated"`
}

// Stats summarises the persisted corpus.
type Stats struct {
	// DocumentCount is the number of imported documents.
	DocumentCount int `json:"documentCount"`

	// PassageCount is the number of persisted passages.
	PassageCount int `json:"passageCount"`

	// EmbeddingCount is the number of persisted embeddings.
	EmbeddingCount int `json:"embeddingCount"`
}
