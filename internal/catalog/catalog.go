// Package catalog records which documents have been vectorized, in SQLite,
// so repeat runs can skip unchanged files and report totals.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one vectorized document.
type Entry struct {
	ID           int64
	Source       string
	SizeBytes    int64
	ChunkCount   int
	Strategy     string
	VectorizedAt time.Time
}

// Catalog tracks vectorized documents in a SQLite database.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path and ensures the
// schema exists.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	c := &Catalog{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL UNIQUE,
		size_bytes INTEGER NOT NULL,
		chunk_count INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		vectorized_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Record upserts the entry for a document after vectorization.
func (c *Catalog) Record(source string, sizeBytes int64, chunkCount int, strategy string) error {
	_, err := c.db.Exec(
		`INSERT INTO documents (source, size_bytes, chunk_count, strategy, vectorized_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			chunk_count = excluded.chunk_count,
			strategy = excluded.strategy,
			vectorized_at = excluded.vectorized_at`,
		source, sizeBytes, chunkCount, strategy, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record document %s: %w", source, err)
	}
	return nil
}

// Get returns the entry for a source path, or (nil, nil) when the document
// has never been vectorized.
func (c *Catalog) Get(source string) (*Entry, error) {
	row := c.db.QueryRow(
		"SELECT id, source, size_bytes, chunk_count, strategy, vectorized_at FROM documents WHERE source = ?",
		source,
	)
	var e Entry
	err := row.Scan(&e.ID, &e.Source, &e.SizeBytes, &e.ChunkCount, &e.Strategy, &e.VectorizedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", source, err)
	}
	return &e, nil
}

// List returns all entries ordered by source path.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(
		"SELECT id, source, size_bytes, chunk_count, strategy, vectorized_at FROM documents ORDER BY source",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Source, &e.SizeBytes, &e.ChunkCount, &e.Strategy, &e.VectorizedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalChunks sums chunk counts across all recorded documents.
func (c *Catalog) TotalChunks() (int, error) {
	var total sql.NullInt64
	if err := c.db.QueryRow("SELECT SUM(chunk_count) FROM documents").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum chunk counts: %w", err)
	}
	return int(total.Int64), nil
}

// Purge removes every entry, typically alongside clearing the vector store.
func (c *Catalog) Purge() error {
	if _, err := c.db.Exec("DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to purge catalog: %w", err)
	}
	return nil
}
