// Command vectorize runs the full pipeline once: it loads every supported
// document under the source directory, cleans and chunks the text, embeds
// the chunks, and stores them in the configured vector store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ragmill/internal/catalog"
	"github.com/ragmill/internal/config"
	"github.com/ragmill/internal/embeddings"
	"github.com/ragmill/internal/pipeline"
	"github.com/ragmill/internal/vectordb"
)

var (
	configPath = flag.String("config", "", "Path to config file (default: built-in defaults)")
	sourceDir  = flag.String("source", "", "Source directory (overrides config)")
	clear      = flag.Bool("clear", false, "Clear the vector store and catalog before vectorizing")
)

func main() {
	flag.Parse()

	// A missing .env is fine; it only supplies OPENAI_API_KEY for local runs.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *sourceDir != "" {
		cfg.SourceDir = *sourceDir
	}

	log.Printf("Loaded configuration:")
	log.Printf("  Source dir: %s (recursive: %v)", cfg.SourceDir, cfg.Recursive)
	log.Printf("  Chunking: strategy=%s size=%d overlap=%d min=%d",
		cfg.Chunking.Strategy, cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap, cfg.Chunking.MinChunkSize)
	log.Printf("  Embeddings: provider=%s model=%s", cfg.Embeddings.Provider, cfg.Embeddings.Model)
	log.Printf("  Vector store: %s (collection: %s)", cfg.VectorDB.Backend, cfg.VectorDB.Collection)

	ctx := context.Background()

	embedder, err := embeddings.New(cfg.Embeddings)
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	store, closeStore, err := vectordb.Open(ctx, cfg.VectorDB.Backend, cfg.VectorDB.Address, cfg.VectorDB.Collection, embedder.Dimension())
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer closeStore()

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer cat.Close()

	if *clear {
		log.Printf("Clearing vector store and catalog")
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear vector store: %v", err)
		}
		if err := cat.Purge(); err != nil {
			log.Fatalf("Failed to purge catalog: %v", err)
		}
	}

	v, err := pipeline.New(cfg, embedder, store, cat)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	stats, err := v.Run(ctx, cfg.SourceDir)
	if err != nil {
		log.Printf("Vectorization failed: %v", err)
		os.Exit(1)
	}

	total, err := store.Count(ctx)
	if err != nil {
		log.Printf("Warning: failed to count stored vectors: %v", err)
	}

	fmt.Printf("Vectorized %d documents into %d chunks (%d skipped)\n", stats.Documents, stats.Chunks, stats.Skipped)
	fmt.Printf("Vector store now holds %d vectors\n", total)
}
