package catalog

import (
	"path/filepath"
	"testing"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalog_RecordAndGet(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Record("docs/ley.pdf", 2048, 12, "legal"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entry, err := c.Get("docs/ley.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry == nil {
		t.Fatal("expected an entry, got nil")
	}
	if entry.ChunkCount != 12 || entry.Strategy != "legal" || entry.SizeBytes != 2048 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.VectorizedAt.IsZero() {
		t.Error("vectorized_at should be set")
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c := openTestCatalog(t)

	entry, err := c.Get("docs/inexistente.txt")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for unknown document, got %+v", entry)
	}
}

func TestCatalog_RecordUpserts(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Record("docs/a.txt", 100, 3, "simple"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := c.Record("docs/a.txt", 150, 5, "semantic"); err != nil {
		t.Fatalf("second Record failed: %v", err)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("upsert should keep one row per source, got %d", len(entries))
	}
	if entries[0].ChunkCount != 5 || entries[0].Strategy != "semantic" {
		t.Errorf("entry was not updated: %+v", entries[0])
	}
}

func TestCatalog_TotalChunksAndPurge(t *testing.T) {
	c := openTestCatalog(t)

	c.Record("a.txt", 1, 3, "simple")
	c.Record("b.txt", 1, 4, "simple")

	total, err := c.TotalChunks()
	if err != nil || total != 7 {
		t.Fatalf("TotalChunks = %d, err = %v, want 7", total, err)
	}

	if err := c.Purge(); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if total, _ = c.TotalChunks(); total != 0 {
		t.Errorf("expected 0 chunks after purge, got %d", total)
	}
}
