package chunker

import (
	"strings"
	"testing"
)

func newLegalChunker(t *testing.T) *Chunker {
	t.Helper()
	c, err := New(Config{ChunkSize: 800, ChunkOverlap: 100, MinChunkSize: 100, Strategy: StrategyLegal})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestLegal_TwoArticlesKeptWhole(t *testing.T) {
	c := newLegalChunker(t)

	bodyA := strings.Repeat("Texto A sobre el objeto del contrato. ", 6)
	bodyB := strings.Repeat("Texto B sobre las obligaciones. ", 6)
	text := "Artículo 1. " + bodyA + "\n\nArtículo 2. " + bodyB

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected exactly 2 chunks (one per article), got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "Artículo 1.") {
		t.Errorf("first chunk should start with its article header, got %q", chunks[0][:30])
	}
	if !strings.HasPrefix(chunks[1], "Artículo 2.") {
		t.Errorf("second chunk should start with its article header, got %q", chunks[1][:30])
	}
	if !strings.Contains(chunks[0], "Texto A") || !strings.Contains(chunks[1], "Texto B") {
		t.Error("article bodies ended up in the wrong chunks")
	}
}

func TestLegal_SectionFallback(t *testing.T) {
	c := newLegalChunker(t)

	body := strings.Repeat("Contenido del capítulo con varias frases. ", 5)
	text := "Capítulo 1\n" + body + "\n\nCapítulo 2\n" + body

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks from chapter markers, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "Capítulo 1") || !strings.HasPrefix(chunks[1], "Capítulo 2") {
		t.Error("chunks should start with their chapter headers")
	}
}

func TestLegal_NoStructureFallsBackToPlainText(t *testing.T) {
	c := newLegalChunker(t)

	text := strings.Repeat("Una frase sin estructura legal alguna. ", 10) // ~390 chars
	chunks := c.ChunkText(text)

	if len(chunks) != 1 {
		t.Fatalf("unstructured text within tolerance should be one chunk, got %d", len(chunks))
	}
}

func TestLegal_HeaderPrefixOnContinuationChunks(t *testing.T) {
	c := newLegalChunker(t)

	para1 := "Artículo 1. " + strings.Repeat("Primera parte del artículo. ", 25) // ~712 chars
	para2 := strings.Repeat("Segunda parte del mismo artículo. ", 12)            // ~408 chars
	text := para1 + "\n\n" + para2

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected the article to split into 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "Artículo 1.") {
		t.Error("first chunk should begin with the header naturally")
	}
	if !strings.HasPrefix(chunks[1], "Artículo 1.") {
		t.Error("continuation chunk should repeat the article header for context")
	}
	if !strings.Contains(chunks[1], "Segunda parte") {
		t.Error("continuation chunk is missing its paragraph")
	}
}

func TestLegal_NumberedListKeptTogether(t *testing.T) {
	c := newLegalChunker(t)

	intro := "Artículo 5. " + strings.Repeat("Condiciones generales aplicables. ", 20) // ~692 chars
	extra := strings.Repeat("Detalle adicional de la cláusula. ", 8)                  // ~272 chars
	items := "1. Primera condición del acuerdo\n\n2. Segunda condición del acuerdo\n\n3. Tercera condición del acuerdo"
	text := intro + "\n\n" + extra + "\n\n" + items

	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("expected the article to split, got %d chunks", len(chunks))
	}

	// The three list items must travel together in one chunk.
	joined := "1. Primera condición del acuerdo\n2. Segunda condición del acuerdo\n3. Tercera condición del acuerdo"
	found := false
	for _, chunk := range chunks {
		if strings.Contains(chunk, joined) {
			found = true
		}
	}
	if !found {
		t.Error("numbered list was split across chunks instead of being coalesced")
	}
}

func TestLegal_PreambleBecomesLeadingSection(t *testing.T) {
	c := newLegalChunker(t)

	preamble := strings.Repeat("Exposición de motivos de la norma. ", 6) // ~210 chars
	body := strings.Repeat("Contenido del artículo primero. ", 6)
	text := preamble + "\n\nArtículo 1. " + body

	chunks := c.ChunkText(text)
	if len(chunks) != 2 {
		t.Fatalf("expected preamble chunk plus article chunk, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "Exposición") {
		t.Error("first chunk should be the unheadered preamble")
	}
	if !strings.HasPrefix(chunks[1], "Artículo 1.") {
		t.Error("second chunk should be the article")
	}
}

func TestLegal_Coverage(t *testing.T) {
	c := newLegalChunker(t)

	text := "Artículo 1. Objeto del contrato y definiciones básicas aplicables al acuerdo entre las partes firmantes.\n\n" +
		"Artículo 2. Obligaciones del proveedor frente al cliente durante toda la vigencia del presente acuerdo."

	chunks := c.ChunkText(text)
	if got, want := normalizeWS(strings.Join(chunks, "")), normalizeWS(text); got != want {
		t.Error("concatenated chunks do not reconstruct the input content")
	}
}
