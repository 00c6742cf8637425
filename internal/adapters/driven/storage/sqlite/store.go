package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docwatch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store owns the database handle.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database at path and applies pending migrations.
// An empty path or MemoryPath opens an in-memory database.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{
		db:   db,
		path: path,
	}

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

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_documents.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration.
func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, title, content, source_kind, source_path, source_line, range_start, range_end, metadata`

// Insert stores or replaces a document.
func (s *documentStore) Insert(ctx context.Context, doc domain.Document) (domain.DocumentID, error) {
	if doc.ID == "" {
		return "", fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
	}

	metadataJSON, err := marshalMetadata(doc.Metadata)
	if err != nil {
		return "", err
	}

	var rangeStart, rangeEnd sql.NullInt64
	if br := doc.Source.ByteRange; br != nil {
		rangeStart = sql.NullInt64{Int64: int64(br.Start), Valid: true}
		rangeEnd = sql.NullInt64{Int64: int64(br.End), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			source_kind = excluded.source_kind,
			source_path = excluded.source_path,
			source_line = excluded.source_line,
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			metadata = excluded.metadata
	`, string(doc.ID), doc.Title, doc.Content, string(doc.Source.Kind), doc.Source.Path,
		doc.Source.Line, rangeStart, rangeEnd, metadataJSON)
	if err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}
	return doc.ID, nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, string(id))
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.DocumentNotFound(id)
	}
	return doc, err
}

// Contains reports whether a document exists.
func (s *documentStore) Contains(ctx context.Context, id domain.DocumentID) (bool, error) {
	var n int
	err := s.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE id = ?`, string(id)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return n > 0, nil
}

// List returns every document.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// Remove deletes a document and returns it.
func (s *documentStore) Remove(ctx context.Context, id domain.DocumentID) (*domain.Document, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, string(id))
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.DocumentNotFound(id)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, string(id)); err != nil {
		return nil, fmt.Errorf("deleting document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}
	return doc, nil
}

// Clear removes every document.
func (s *documentStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return nil
}

// Len returns the number of documents.
func (s *documentStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// IsEmpty reports whether the store holds no documents.
func (s *documentStore) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Len(ctx)
	return n == 0, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a single document row. sql.ErrNoRows is returned
// unwrapped so callers can map it.
func scanDocument(row scanner) (*domain.Document, error) {
	var (
		doc                  domain.Document
		id, kind             string
		rangeStart, rangeEnd sql.NullInt64
		metadataJSON         string
	)

	if err := row.Scan(&id, &doc.Title, &doc.Content, &kind, &doc.Source.Path,
		&doc.Source.Line, &rangeStart, &rangeEnd, &metadataJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.ID = domain.DocumentID(id)
	doc.Source.Kind = domain.SourceKind(kind)
	if rangeStart.Valid && rangeEnd.Valid {
		doc.Source.ByteRange = &domain.ByteRange{Start: int(rangeStart.Int64), End: int(rangeEnd.Int64)}
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

func marshalMetadata(m domain.Metadata) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshalling metadata: %w", err)
	}
	return string(data), nil
}
