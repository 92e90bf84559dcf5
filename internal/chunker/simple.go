package chunker

// simpleStrategy accumulates whole paragraphs greedily up to the chunk size.
// A paragraph that alone exceeds the chunk size falls back to fixed-width
// splitting. This is the default strategy and the right one for generic
// prose.
type simpleStrategy struct {
	cfg Config
}

func newSimpleStrategy(cfg Config) *simpleStrategy {
	return &simpleStrategy{cfg: cfg}
}

func (s *simpleStrategy) chunk(text string) []string {
	paragraphs := splitParagraphs(text)

	var chunks []string
	var buf string

	for _, para := range paragraphs {
		if len(buf)+len(para) > s.cfg.ChunkSize {
			if len(buf) >= s.cfg.MinChunkSize {
				chunks = append(chunks, buf)
			}
			if len(para) > s.cfg.ChunkSize {
				// Oversized paragraph: split it directly, start a fresh buffer.
				chunks = append(chunks, chunkByChars(para, s.cfg.ChunkSize, s.cfg.ChunkOverlap, s.cfg.MinChunkSize)...)
				buf = ""
			} else {
				buf = para
			}
		} else {
			if buf != "" {
				buf += "\n\n" + para
			} else {
				buf = para
			}
		}
	}

	if len(buf) >= s.cfg.MinChunkSize {
		chunks = append(chunks, buf)
	}

	return chunks
}
