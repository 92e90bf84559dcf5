// Command query embeds a question and prints the most similar stored chunks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ragmill/internal/config"
	"github.com/ragmill/internal/embeddings"
	"github.com/ragmill/internal/vectordb"
)

var (
	configPath = flag.String("config", "", "Path to config file (default: built-in defaults)")
	topK       = flag.Int("top-k", 5, "Number of results to return")
	source     = flag.String("source", "", "Only return chunks from this source file")
)

func main() {
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		log.Fatalf("Usage: query [-config path] [-top-k n] [-source path] <question>")
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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

	vector, err := embedder.EmbedText(ctx, query)
	if err != nil {
		log.Fatalf("Failed to embed query: %v", err)
	}

	var filter map[string]string
	if *source != "" {
		filter = map[string]string{"source": *source}
	}

	matches, err := store.Query(ctx, vector, *topK, filter)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matching chunks found.")
		return
	}

	for i, m := range matches {
		src, _ := m.Metadata["source"].(string)
		fmt.Printf("--- Result %d (score %.4f, source %s) ---\n", i+1, m.Score, src)
		fmt.Println(m.Text)
		fmt.Println()
	}
}
