package embeddings

import (
	"context"
	"hash/fnv"
	"math"
)

// Mock generates deterministic pseudo-embeddings from a text hash. The same
// text always maps to the same unit vector, which is enough for tests and
// for exercising the pipeline without a model.
type Mock struct {
	dim int
}

// NewMock creates a mock embedder producing vectors of the given dimension.
func NewMock(dim int) *Mock {
	return &Mock{dim: dim}
}

func (m *Mock) Dimension() int {
	return m.dim
}

func (m *Mock) EmbedText(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, m.dim)
	var norm float64
	for i := range vector {
		v := math.Sin(float64(seed) * float64(i+1) * 0.1)
		vector[i] = float32(v)
		norm += v * v
	}

	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}
	return vector, nil
}

func (m *Mock) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := m.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}
