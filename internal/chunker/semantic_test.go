package chunker

import (
	"strings"
	"testing"
)

func newSemanticChunker(t *testing.T, cfg Config) *Chunker {
	t.Helper()
	cfg.Strategy = StrategySemantic
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestSemantic_TopicShiftForcesBoundary(t *testing.T) {
	c := newSemanticChunker(t, Config{ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 10})

	text := "La economía creció durante el año. El sector agrícola mejoró notablemente. " +
		"Sin embargo, la inflación subió más de lo esperado."

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected a boundary at the contrastive connective, got %d chunks: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "Sin embargo") {
		t.Errorf("second chunk should start at the topic shift, got %q", chunks[1])
	}
}

func TestSemantic_TopicShiftBeatsSize(t *testing.T) {
	c := newSemanticChunker(t, Config{ChunkSize: 10000, ChunkOverlap: 0, MinChunkSize: 10})

	// Everything fits in one chunk by size; the structural marker must still
	// force a cut.
	text := "Introducción general del documento con varios detalles. " +
		"Artículo 1 establece las condiciones básicas del acuerdo."

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected structural marker to force a boundary, got %d chunks: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "Artículo") {
		t.Errorf("second chunk should start at the marker, got %q", chunks[1])
	}
}

func TestSemantic_SizeCappedAccumulation(t *testing.T) {
	c := newSemanticChunker(t, Config{ChunkSize: 120, ChunkOverlap: 0, MinChunkSize: 10})

	// Neutral sentences, no topic markers: boundaries come from size alone.
	text := strings.Repeat("Esta frase neutra describe hechos cotidianos sin conectores. ", 6)

	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple size-capped chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 130 {
			t.Errorf("chunk %d exceeds the size cap: %d bytes", i, len(chunk))
		}
	}
}

func TestSemantic_TopicMarkers(t *testing.T) {
	cases := []struct {
		sentence string
		shift    bool
	}{
		{"Sin embargo, los resultados variaron.", true},
		{"Por otro lado, el mercado cayó.", true},
		{"Además de lo anterior, se observó crecimiento.", true},
		{"Capítulo 3 describe la metodología.", true},
		{"Artículo 12. De las sanciones.", true},
		{"1. Primer punto del orden del día.", true},
		{"Los resultados fueron consistentes.", false},
		{"Parten los datos de una muestra pequeña.", false},
	}

	for _, tc := range cases {
		if got := isTopicShift(tc.sentence); got != tc.shift {
			t.Errorf("isTopicShift(%q) = %v, want %v", tc.sentence, got, tc.shift)
		}
	}
}
