// Package pipeline wires the vectorization flow together: load documents,
// clean their text, chunk, embed, and persist chunks in the vector store,
// recording results in the catalog.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ragmill/internal/catalog"
	"github.com/ragmill/internal/chunker"
	"github.com/ragmill/internal/cleaner"
	"github.com/ragmill/internal/config"
	"github.com/ragmill/internal/embeddings"
	"github.com/ragmill/internal/loader"
	"github.com/ragmill/internal/vectordb"
)

// Stats summarizes one vectorization run.
type Stats struct {
	Documents int
	Chunks    int
	Skipped   int
}

// Vectorizer executes the load → clean → chunk → embed → store flow. It is
// safe for concurrent use: the chunker is immutable and the store and
// catalog serialize their own writes.
type Vectorizer struct {
	cfg      *config.Config
	chunker  *chunker.Chunker
	embedder embeddings.Embedder
	store    vectordb.Store
	catalog  *catalog.Catalog // optional
}

// New builds a Vectorizer. The chunker is constructed here so an invalid
// chunking configuration fails before any document is read. The catalog may
// be nil when run tracking is not wanted.
func New(cfg *config.Config, embedder embeddings.Embedder, store vectordb.Store, cat *catalog.Catalog) (*Vectorizer, error) {
	ch, err := chunker.New(cfg.Chunking)
	if err != nil {
		return nil, err
	}
	return &Vectorizer{
		cfg:      cfg,
		chunker:  ch,
		embedder: embedder,
		store:    store,
		catalog:  cat,
	}, nil
}

// Run vectorizes every supported document under sourceDir. Documents are
// processed in parallel up to the configured worker count; each document is
// independent, so a failing document aborts the batch only via the error
// group's first-error semantics.
func (v *Vectorizer) Run(ctx context.Context, sourceDir string) (Stats, error) {
	docs, err := loader.LoadDirectory(sourceDir, v.cfg.Recursive)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) == 0 {
		return Stats{}, fmt.Errorf("no supported documents found in %s", sourceDir)
	}
	log.Printf("pipeline.Run: loaded %d documents from %s", len(docs), sourceDir)

	var (
		mu    sync.Mutex
		stats Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.cfg.Workers)
	for _, doc := range docs {
		g.Go(func() error {
			count, err := v.vectorizeDocument(ctx, doc)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			stats.Documents++
			stats.Chunks += count
			if count == 0 {
				stats.Skipped++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	log.Printf("pipeline.Run: %d documents, %d chunks, %d skipped", stats.Documents, stats.Chunks, stats.Skipped)
	return stats, nil
}

// VectorizeFile runs the flow for a single file and returns the number of
// chunks stored. Zero chunks is not an error: it means the document's
// content did not clear min_chunk_size and the tuning should be revisited.
func (v *Vectorizer) VectorizeFile(ctx context.Context, path string) (int, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return 0, err
	}
	return v.vectorizeDocument(ctx, doc)
}

func (v *Vectorizer) vectorizeDocument(ctx context.Context, doc chunker.Document) (int, error) {
	source, _ := doc.Metadata["source"].(string)

	doc.Text = cleaner.Clean(doc.Text)
	chunks := v.chunker.ChunkDocument(doc)
	if len(chunks) == 0 {
		log.Printf("vectorizeDocument: %s produced no chunks (content below min_chunk_size?)", source)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		metadatas[i] = c.Metadata
	}

	vectors, err := v.embedBatches(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed %s: %w", source, err)
	}

	if err := v.store.Add(ctx, texts, vectors, metadatas, nil); err != nil {
		return 0, fmt.Errorf("failed to store chunks of %s: %w", source, err)
	}

	if v.catalog != nil {
		size, _ := doc.Metadata["size_bytes"].(int64)
		if err := v.catalog.Record(source, size, len(chunks), v.chunker.Config().Strategy); err != nil {
			return 0, err
		}
	}

	log.Printf("vectorizeDocument: %s -> %d chunks", source, len(chunks))
	return len(chunks), nil
}

// embedBatches embeds texts in provider-sized batches.
func (v *Vectorizer) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	batchSize := v.cfg.Embeddings.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := v.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
