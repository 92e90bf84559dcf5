package embeddings

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "tensor9000"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "tensor9000") || !strings.Contains(err.Error(), "mock") {
		t.Errorf("error should name the bad provider and the valid set, got: %v", err)
	}
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	if _, err := New(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for missing api_key")
	}
}

func TestMock_Deterministic(t *testing.T) {
	m := NewMock(64)
	ctx := context.Background()

	a, err := m.EmbedText(ctx, "el mismo texto")
	if err != nil {
		t.Fatalf("EmbedText failed: %v", err)
	}
	b, err := m.EmbedText(ctx, "el mismo texto")
	if err != nil {
		t.Fatalf("EmbedText failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same text should produce the same vector")
	}

	c, _ := m.EmbedText(ctx, "otro texto distinto")
	if reflect.DeepEqual(a, c) {
		t.Error("different texts should produce different vectors")
	}
}

func TestMock_DimensionAndNorm(t *testing.T) {
	m := NewMock(128)
	vector, err := m.EmbedText(context.Background(), "texto de prueba")
	if err != nil {
		t.Fatalf("EmbedText failed: %v", err)
	}
	if len(vector) != 128 {
		t.Fatalf("expected 128 dimensions, got %d", len(vector))
	}

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 0.01 {
		t.Errorf("expected a unit vector, norm = %f", math.Sqrt(norm))
	}
}

func TestMock_Batch(t *testing.T) {
	m := NewMock(16)
	texts := []string{"uno", "dos", "tres"}

	vectors, err := m.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(vectors))
	}
	for i, text := range texts {
		single, _ := m.EmbedText(context.Background(), text)
		if !reflect.DeepEqual(vectors[i], single) {
			t.Errorf("batch vector %d differs from single embedding", i)
		}
	}
}
