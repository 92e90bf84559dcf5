package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

// snapWindow is how far snapToSentenceEnd looks around a cut position for a
// sentence terminator.
const snapWindow = 100

var sentenceEndRe = regexp.MustCompile(`[.!?]+\s`)

// splitSentences splits text on sentence-terminal punctuation followed by
// whitespace. The terminators themselves are consumed by the split. Results
// are trimmed and empties dropped.
func splitSentences(text string) []string {
	parts := sentenceEndRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// splitSentencesLocale splits text into sentences, requiring the character
// after the terminator and whitespace to be an uppercase letter (including
// accented Latin letters) before accepting a boundary. That avoids splitting
// on abbreviations and decimals but it is a heuristic, not a grammar-correct
// sentence splitter. Terminators stay attached to their sentence.
func splitSentencesLocale(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 && j < len(runes) && unicode.IsUpper(runes[j]) {
				if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
					sentences = append(sentences, s)
				}
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// splitSentencesKeep splits on terminator-plus-whitespace like
// splitSentences but keeps the terminators attached, so joining the results
// loses no punctuation.
func splitSentencesKeep(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			j := i + 1
			for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
				j++
			}
			if j < len(text) && (text[j] == ' ' || text[j] == '\t' || text[j] == '\n' || text[j] == '\r') {
				if s := strings.TrimSpace(text[start:j]); s != "" {
					sentences = append(sentences, s)
				}
				start = j
				i = j + 1
				continue
			}
			i = j
			continue
		}
		i++
	}
	if start < len(text) {
		if s := strings.TrimSpace(text[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// splitParagraphs splits text on blank lines, trims each paragraph and drops
// empties.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// snapToSentenceEnd adjusts a desired cut position to just past the nearest
// sentence terminator within window bytes on either side. If no terminator
// is found in [end-window, min(end+window, len)), end comes back unchanged.
func snapToSentenceEnd(text string, end, window int) int {
	searchStart := end - window
	if searchStart < 0 {
		searchStart = 0
	}
	searchEnd := end + window
	if searchEnd > len(text) {
		searchEnd = len(text)
	}
	if searchStart >= searchEnd {
		return end
	}
	idx := strings.LastIndexAny(text[searchStart:searchEnd], ".!?")
	if idx <= 0 {
		return end
	}
	return searchStart + idx + 1
}
