// Package vectordb persists chunk vectors and answers nearest-neighbor
// queries. The Qdrant implementation is the production store; the in-memory
// implementation serves tests and local runs without a Qdrant server.
package vectordb

import (
	"context"
	"fmt"
)

// Match is one nearest-neighbor hit.
type Match struct {
	ID       string
	Score    float32
	Text     string
	Metadata map[string]any
}

// Store persists (text, vector, metadata) tuples and answers similarity
// queries. Add takes parallel slices; ids may be nil, in which case the
// store assigns them.
type Store interface {
	Add(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]any, ids []string) error
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Match, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// validateBatch checks the parallel-slice invariant shared by Store
// implementations.
func validateBatch(texts []string, vectors [][]float32, metadatas []map[string]any, ids []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("nothing to add")
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("got %d texts but %d vectors", len(texts), len(vectors))
	}
	if metadatas != nil && len(metadatas) != len(texts) {
		return fmt.Errorf("got %d texts but %d metadatas", len(texts), len(metadatas))
	}
	if ids != nil && len(ids) != len(texts) {
		return fmt.Errorf("got %d texts but %d ids", len(texts), len(ids))
	}
	return nil
}
