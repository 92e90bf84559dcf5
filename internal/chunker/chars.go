package chunker

import (
	"strings"
	"unicode/utf8"
)

// chunkByChars splits text into fixed-width pieces of roughly size bytes
// with overlap bytes repeated between consecutive pieces. Cut positions are
// snapped to a nearby sentence terminator when one exists within snapWindow;
// otherwise the cut backs off to a rune boundary so multi-byte characters
// are never split. Pieces shorter than minSize after trimming are dropped.
//
// The loop always terminates: overlap < size is enforced at construction
// and the cursor is clamped to strictly advance every iteration, even when
// boundary snapping pulls a cut backwards.
func chunkByChars(text string, size, overlap, minSize int) []string {
	var chunks []string
	start := 0
	n := len(text)

	for start < n {
		end := start + size
		if end >= n {
			end = n
		} else {
			// A snapped boundary is only usable when the next start
			// (end - overlap) still moves forward; a terminator early in
			// the window could otherwise pull the cursor backwards.
			snapped := snapToSentenceEnd(text, end, snapWindow)
			if snapped != end && snapped-overlap > start {
				end = snapped
			} else {
				for end > start && !utf8.RuneStart(text[end]) {
					end--
				}
			}
			if end > n {
				end = n
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if len(chunk) >= minSize {
			chunks = append(chunks, chunk)
		}

		if end >= n {
			break
		}
		prev := start
		start = end - overlap
		if start <= prev {
			start = prev + 1
		}
		for start < n && !utf8.RuneStart(text[start]) {
			start++
		}
	}

	return chunks
}
