package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shinefly-smile/localLens/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/vector"
)

// Store is the SQLite-backed document store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.locallens/data/locallens.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".locallens", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "locallens.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertDocument looks up or creates the document for a path. An existing
// document keeps its ID and gets a fresh ImportedAt timestamp.
func (s *Store) UpsertDocument(ctx context.Context, path, name string) (*domain.Document, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	doc := domain.Document{
		ID:         uuid.New().String(),
		Path:       path,
		Name:       name,
		ImportedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, name, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			imported_at = excluded.imported_at
	`, doc.ID, doc.Path, doc.Name, doc.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("upserting document: %w", err)
	}

	// Read the row back: on conflict the original ID survives.
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, name, imported_at FROM documents WHERE path = ?
	`, path)
	if err := row.Scan(&doc.ID, &doc.Path, &doc.Name, &doc.ImportedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return &doc, nil
}

// ReplacePassages wipes a document's embeddings and passages and inserts
// the given passages, all in one transaction.
func (s *Store) ReplacePassages(ctx context.Context, documentID string, passages []domain.Passage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM embeddings WHERE passage_id IN
			(SELECT id FROM passages WHERE document_id = ?)
	`, documentID); err != nil {
		return fmt.Errorf("deleting embeddings: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM passages WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (id, document_id, content, passage_index)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range passages {
		if _, err := stmt.ExecContext(ctx, p.ID, documentID, p.Content, p.Index); err != nil {
			return fmt.Errorf("inserting passage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveEmbedding stores the vector for a passage, replacing any previous one.
func (s *Store) SaveEmbedding(ctx context.Context, passageID string, vec []float32) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO embeddings (passage_id, vector)
		VALUES (?, ?)
		ON CONFLICT(passage_id) DO UPDATE SET
			vector = excluded.vector
	`, passageID, vector.ToBytes(vec))
	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// AllEmbeddings returns every persisted (passage, vector) pair.
func (s *Store) AllEmbeddings(ctx context.Context) ([]domain.Embedding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT passage_id, vector FROM embeddings
	`)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var embeddings []domain.Embedding //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.Embedding
		var blob []byte
		if err := rows.Scan(&e.PassageID, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		if e.Vector, err = vector.FromBytes(blob); err != nil {
			return nil, fmt.Errorf("decoding embedding %s: %w", e.PassageID, err)
		}
		embeddings = append(embeddings, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	return embeddings, nil
}

// GetPassage retrieves a passage by ID.
func (s *Store) GetPassage(ctx context.Context, id string) (*domain.Passage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, passage_index
		FROM passages WHERE id = ?
	`, id)

	var p domain.Passage
	if err := row.Scan(&p.ID, &p.DocumentID, &p.Content, &p.Index); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning passage: %w", err)
	}

	return &p, nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, name, imported_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.Path, &doc.Name, &doc.ImportedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return &doc, nil
}

// KeywordSearch performs case-sensitive substring matching over passage
// content. instr() rather than LIKE: no wildcard escaping, and SQLite's
// LIKE is case-insensitive for ASCII.
func (s *Store) KeywordSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.content, p.passage_index, d.name, d.path
		FROM passages p
		JOIN documents d ON d.id = p.document_id
		WHERE instr(p.content, ?) > 0
		ORDER BY length(p.content) ASC
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.Content, &r.PassageIndex, &r.DocumentName, &r.DocumentPath); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return results, nil
}

// Stats reports document, passage and embedding counts.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM documents),
			(SELECT COUNT(*) FROM passages),
			(SELECT COUNT(*) FROM embeddings)
	`)
	if err := row.Scan(&stats.DocumentCount, &stats.PassageCount, &stats.EmbeddingCount); err != nil {
		return domain.Stats{}, fmt.Errorf("scanning stats: %w", err)
	}
	return stats, nil
}
