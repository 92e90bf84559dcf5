package chunker

import (
	"regexp"
	"strings"
)

// sectionTolerance lets a section overshoot the chunk size by 20% before it
// gets split; keeping an article intact beats strict size compliance.
const sectionTolerance = 1.2

var (
	articleRe  = regexp.MustCompile(`(?mi)^(artículo|art\.)\s*\d+[.:)]`)
	sectionRe  = regexp.MustCompile(`(?mi)^(sección|capítulo|cap\.)\s*\d+`)
	listItemRe = regexp.MustCompile(`^\s*\d+[.)]\s+`)
)

// legalStrategy chunks texts with numbered articles or sections, as found in
// legal and regulatory documents. Structural headers delimit sections;
// sections are kept whole when they roughly fit the chunk size, and when one
// must be split its header is carried onto the continuation chunks so each
// chunk keeps its context.
type legalStrategy struct {
	cfg Config
}

// legalSection is one structural unit: the matched header plus everything up
// to the next header. The header is empty for preamble text and for
// documents with no detectable structure.
type legalSection struct {
	header  string
	content string
}

func newLegalStrategy(cfg Config) *legalStrategy {
	return &legalStrategy{cfg: cfg}
}

func (s *legalStrategy) chunk(text string) []string {
	var chunks []string
	for _, sec := range s.splitSections(text) {
		chunks = append(chunks, s.chunkSection(sec)...)
	}
	return chunks
}

// splitSections carves text into sections at article markers, falling back
// to section/chapter markers, and finally to one unheadered section when the
// text has no detectable structure. Text before the first marker becomes an
// unheadered leading section if it is big enough to matter.
func (s *legalStrategy) splitSections(text string) []legalSection {
	matches := articleRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		matches = sectionRe.FindAllStringIndex(text, -1)
	}
	if len(matches) == 0 {
		return []legalSection{{content: strings.TrimSpace(text)}}
	}

	var sections []legalSection
	if preamble := strings.TrimSpace(text[:matches[0][0]]); len(preamble) > s.cfg.MinChunkSize {
		sections = append(sections, legalSection{content: preamble})
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, legalSection{
			header:  text[m[0]:m[1]],
			content: strings.TrimSpace(text[m[0]:end]),
		})
	}

	return sections
}

func (s *legalStrategy) chunkSection(sec legalSection) []string {
	if len(sec.content) <= int(float64(s.cfg.ChunkSize)*sectionTolerance) {
		return []string{sec.content}
	}

	paragraphs := splitParagraphs(sec.content)

	var chunks []string
	var buf string
	emitted := 0

	flush := func() {
		if len(buf) >= s.cfg.MinChunkSize {
			chunks = append(chunks, buf)
			emitted++
		}
		buf = ""
	}
	// Chunks after the first within a section repeat the header for context.
	open := func(para string) string {
		if sec.header != "" && emitted > 0 && !strings.HasPrefix(para, sec.header) {
			return sec.header + "\n\n" + para
		}
		return para
	}

	for i := 0; i < len(paragraphs); i++ {
		para := paragraphs[i]

		if listItemRe.MatchString(para) {
			if joined, n := s.coalesceList(paragraphs, i); n > 1 {
				para = joined
				i += n - 1
			}
		}

		if len(buf)+len(para) > s.cfg.ChunkSize {
			flush()
			if len(para) > s.cfg.ChunkSize {
				split := s.splitLongParagraph(para)
				chunks = append(chunks, split...)
				emitted += len(split)
			} else {
				buf = open(para)
			}
		} else if buf != "" {
			buf += "\n\n" + para
		} else {
			buf = open(para)
		}
	}
	flush()

	return chunks
}

// coalesceList joins the run of consecutive numbered-list paragraphs
// starting at idx into one unit, provided the joined list still fits the
// chunk size. Returns the joined text and the number of paragraphs
// consumed; (_, 1) means no coalescing happened.
func (s *legalStrategy) coalesceList(paragraphs []string, idx int) (string, int) {
	end := idx + 1
	for end < len(paragraphs) && listItemRe.MatchString(paragraphs[end]) {
		end++
	}
	if end == idx+1 {
		return paragraphs[idx], 1
	}
	joined := strings.Join(paragraphs[idx:end], "\n")
	if len(joined) > s.cfg.ChunkSize {
		return paragraphs[idx], 1
	}
	return joined, end - idx
}

// splitLongParagraph splits an oversized paragraph at sentence boundaries,
// accumulating sentences up to the chunk size.
func (s *legalStrategy) splitLongParagraph(text string) []string {
	var chunks []string
	var buf string
	for _, sent := range splitSentencesKeep(text) {
		if len(buf)+len(sent) > s.cfg.ChunkSize {
			if len(buf) >= s.cfg.MinChunkSize {
				chunks = append(chunks, buf)
			}
			buf = sent
		} else if buf != "" {
			buf += " " + sent
		} else {
			buf = sent
		}
	}
	if len(buf) >= s.cfg.MinChunkSize {
		chunks = append(chunks, buf)
	}
	return chunks
}
