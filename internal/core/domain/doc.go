// Package domain defines the core business entities for LocalLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An imported text file
//   - Passage: A retrievable span of text within a document
//   - ModelStatus: Availability of the local embedding model
//   - SearchResult: A ranked search hit with provenance
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
