package chunker

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("Hola mundo. ¿Qué tal? Todo bien! Fin")
	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Hola mundo" {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
	if sentences[3] != "Fin" {
		t.Errorf("trailing text without terminator should survive, got %q", sentences[3])
	}
}

func TestSplitSentences_DropsEmpties(t *testing.T) {
	sentences := splitSentences("Uno.  Dos. . ")
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" {
			t.Errorf("empty sentence leaked through: %q", s)
		}
	}
}

func TestSplitSentencesLocale_DecimalsAndAbbreviations(t *testing.T) {
	// A decimal point must not end a sentence.
	sentences := splitSentencesLocale("La tasa fue 3.5 por ciento. Ésta subió después.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if !strings.Contains(sentences[0], "3.5") {
		t.Errorf("decimal was split: %q", sentences[0])
	}
	if !strings.HasPrefix(sentences[1], "Ésta") {
		t.Errorf("accented uppercase should start the second sentence, got %q", sentences[1])
	}

	// Lowercase after the terminator means no boundary.
	sentences = splitSentencesLocale("Se aplica el art. citado y nada más.")
	if len(sentences) != 1 {
		t.Errorf("abbreviation followed by lowercase should not split, got %v", sentences)
	}
}

func TestSplitSentencesKeep_PreservesTerminators(t *testing.T) {
	text := "Primera frase. Segunda frase! Tercera"
	sentences := splitSentencesKeep(text)
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Primera frase." || sentences[1] != "Segunda frase!" {
		t.Errorf("terminators should stay attached: %v", sentences)
	}
	if got, want := normalizeWS(strings.Join(sentences, "")), normalizeWS(text); got != want {
		t.Error("joining kept sentences lost content")
	}
}

func TestSplitParagraphs(t *testing.T) {
	paragraphs := splitParagraphs("uno\n\ndos\n\n\n\ntres\n\n   \n\ncuatro")
	want := []string{"uno", "dos", "tres", "cuatro"}
	if len(paragraphs) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %v", len(want), len(paragraphs), paragraphs)
	}
	for i := range want {
		if paragraphs[i] != want[i] {
			t.Errorf("paragraph %d: got %q, want %q", i, paragraphs[i], want[i])
		}
	}
}

func TestSnapToSentenceEnd_FindsNearbyBoundary(t *testing.T) {
	text := strings.Repeat("x", 50) + ". " + strings.Repeat("y", 100)
	got := snapToSentenceEnd(text, 60, 100)
	if got != 51 {
		t.Errorf("expected snap to position 51 (just after the period), got %d", got)
	}
}

func TestSnapToSentenceEnd_NoBoundaryInWindow(t *testing.T) {
	text := strings.Repeat("x", 500)
	if got := snapToSentenceEnd(text, 250, 100); got != 250 {
		t.Errorf("expected unchanged position 250, got %d", got)
	}
}
