package domain

import "time"

// Document represents one imported text file.
// Identity is the filesystem path: re-importing the same path updates
// ImportedAt and replaces the document's passages, never duplicating the row.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Path is the absolute filesystem path (unique).
	Path string

	// Name is the human-readable display name (base file name).
	Name string

	// ImportedAt is when the document was last imported.
	ImportedAt time.Time
}

// Passage is a bounded, independently retrievable span of text
// extracted from a document. Passages are created in bulk during
// ingestion and replaced wholesale on re-import.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the passage text.
	Content string

	// Index is the zero-based position within the document.
	Index int
}

// Embedding pairs a passage with its vector representation.
// The vector is L2-normalized and has the encoder's hidden dimension
// (384 for all-MiniLM class models). Absent when the encoder was
// unavailable at ingestion time.
type Embedding struct {
	// PassageID links to the embedded passage (at most one per passage).
	PassageID string

	// Vector is the L2-normalized embedding.
	Vector []float32
}
