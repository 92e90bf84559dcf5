package chunker

import (
	"regexp"
)

// topicMarkerRes match sentences that signal a topic shift: contrastive and
// additive connectives, structural markers, and numeric list markers.
var topicMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(por otro lado|por otra parte|en cambio|sin embargo|además|asimismo)\b`),
	regexp.MustCompile(`(?i)^(capítulo|sección|artículo|parte)\b`),
	regexp.MustCompile(`^\d+\.`),
}

// semanticStrategy groups sentences into chunks and forces a boundary when
// a sentence signals a topic shift, regardless of how full the current
// chunk is.
//
// Topic shifts are detected with a discourse-marker heuristic. This is a
// placeholder for real semantic segmentation, which would compare embeddings
// of consecutive sentences against a similarity threshold (nominally 0.6)
// and cut where similarity drops; that version needs an embedding model in
// the chunking path and is intentionally not implemented here.
type semanticStrategy struct {
	cfg Config
}

func newSemanticStrategy(cfg Config) *semanticStrategy {
	return &semanticStrategy{cfg: cfg}
}

func (s *semanticStrategy) chunk(text string) []string {
	sentences := splitSentencesLocale(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	buf := sentences[0]

	flush := func() {
		if len(buf) >= s.cfg.MinChunkSize {
			chunks = append(chunks, buf)
		}
	}

	for _, sent := range sentences[1:] {
		if isTopicShift(sent) {
			// Topic change wins over size: cut here even if the buffer is small.
			flush()
			buf = sent
			continue
		}
		if len(buf)+len(sent) > s.cfg.ChunkSize {
			flush()
			buf = sent
		} else {
			buf += " " + sent
		}
	}
	flush()

	return chunks
}

func isTopicShift(sentence string) bool {
	for _, re := range topicMarkerRes {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}
