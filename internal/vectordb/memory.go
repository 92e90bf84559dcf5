package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRecord struct {
	id       string
	text     string
	vector   []float32
	metadata map[string]any
}

// MemoryStore is a brute-force cosine-similarity store held in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records []memoryRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Add(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]any, ids []string) error {
	if err := validateBatch(texts, vectors, metadatas, ids); err != nil {
		return fmt.Errorf("invalid batch: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, text := range texts {
		id := ""
		if ids != nil {
			id = ids[i]
		}
		if id == "" {
			id = uuid.NewString()
		}
		var meta map[string]any
		if metadatas != nil {
			meta = metadatas[i]
		}
		m.records = append(m.records, memoryRecord{
			id:       id,
			text:     text,
			vector:   vectors[i],
			metadata: meta,
		})
	}
	return nil
}

func (m *MemoryStore) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Match, error) {
	if topK <= 0 {
		topK = 10
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.records))
	for _, rec := range m.records {
		if !matchesFilter(rec.metadata, filter) {
			continue
		}
		matches = append(matches, Match{
			ID:       rec.id,
			Score:    cosineSimilarity(vector, rec.vector),
			Text:     rec.text,
			Metadata: rec.metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

func matchesFilter(metadata map[string]any, filter map[string]string) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok || fmt.Sprintf("%v", got) != want {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
