// Package chunker splits document text into bounded-size chunks for
// embedding and vector storage. Three strategies are available: "simple"
// (paragraph-first, the default), "legal" (structure-aware for numbered
// articles and sections), and "semantic" (sentence grouping with topic-shift
// detection). The strategy is selected once at construction and a Chunker is
// immutable afterwards, so a single instance is safe for concurrent use
// across documents.
package chunker

import (
	"fmt"
	"strings"
)

// Strategy names accepted by New.
const (
	StrategySimple   = "simple"
	StrategyLegal    = "legal"
	StrategySemantic = "semantic"
)

// Strategies returns the list of valid strategy names.
func Strategies() []string {
	return []string{StrategySimple, StrategyLegal, StrategySemantic}
}

// Document is a unit of raw text plus its source metadata, as produced by
// the loader.
type Document struct {
	Text     string
	Metadata map[string]any
}

// Chunk is one bounded segment of a document. Metadata carries the parent
// document's metadata plus chunk_index, total_chunks and chunk_size.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// Config controls chunk sizing and strategy selection. Sizes are in bytes
// of UTF-8 text, so they are approximate for accented text.
type Config struct {
	ChunkSize    int    `mapstructure:"chunk_size"`
	ChunkOverlap int    `mapstructure:"chunk_overlap"`
	MinChunkSize int    `mapstructure:"min_chunk_size"`
	Strategy     string `mapstructure:"strategy"`
}

// DefaultConfig returns the standard tuning: 800-byte chunks with 100 bytes
// of overlap, 100-byte minimum, simple strategy.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    800,
		ChunkOverlap: 100,
		MinChunkSize: 100,
		Strategy:     StrategySimple,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ChunkSize == 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.MinChunkSize == 0 {
		c.MinChunkSize = def.MinChunkSize
	}
	if c.Strategy == "" {
		c.Strategy = def.Strategy
	}
	return c
}

// Validate checks the configuration. A strategy name outside the valid set
// and an overlap that is not strictly smaller than the chunk size are both
// rejected; the latter would make fixed-width splitting stall or walk
// backwards.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MinChunkSize <= 0 || c.MinChunkSize > c.ChunkSize {
		return fmt.Errorf("min_chunk_size must be in (0, chunk_size], got %d", c.MinChunkSize)
	}
	switch c.Strategy {
	case StrategySimple, StrategyLegal, StrategySemantic:
	default:
		return fmt.Errorf("unknown chunking strategy %q, valid strategies: %s",
			c.Strategy, strings.Join(Strategies(), ", "))
	}
	return nil
}

// strategy is the internal contract shared by the three chunking algorithms.
type strategy interface {
	chunk(text string) []string
}

// Chunker applies one chunking strategy to documents. Construct with New;
// zero fields in the Config take the defaults from DefaultConfig.
type Chunker struct {
	cfg   Config
	strat strategy
}

// New validates cfg and builds a Chunker with the configured strategy.
// Validation happens here rather than on first use so a bad strategy name
// or a degenerate overlap fails the run up front.
func New(cfg Config) (*Chunker, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunking config: %w", err)
	}

	var strat strategy
	switch cfg.Strategy {
	case StrategySimple:
		strat = newSimpleStrategy(cfg)
	case StrategyLegal:
		strat = newLegalStrategy(cfg)
	case StrategySemantic:
		strat = newSemanticStrategy(cfg)
	}

	return &Chunker{cfg: cfg, strat: strat}, nil
}

// Config returns the configuration the Chunker was built with.
func (c *Chunker) Config() Config {
	return c.cfg
}

// ChunkText splits a text blob into ordered chunk strings. Empty or
// whitespace-only input yields no chunks.
func (c *Chunker) ChunkText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.strat.chunk(text)
}

// ChunkDocument splits one document and attaches positional metadata to each
// chunk: chunk_index (0-based, contiguous), total_chunks (same on every
// chunk) and chunk_size (byte length of the chunk text). The document's own
// metadata is copied onto every chunk.
func (c *Chunker) ChunkDocument(doc Document) []Chunk {
	texts := c.ChunkText(doc.Text)
	chunks := make([]Chunk, 0, len(texts))
	for i, text := range texts {
		meta := make(map[string]any, len(doc.Metadata)+3)
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		meta["chunk_index"] = i
		meta["total_chunks"] = len(texts)
		meta["chunk_size"] = len(text)
		chunks = append(chunks, Chunk{Text: text, Metadata: meta})
	}
	return chunks
}

// ChunkDocuments chunks a batch of documents and concatenates the results.
// chunk_index and total_chunks are scoped per document.
func (c *Chunker) ChunkDocuments(docs []Document) []Chunk {
	var all []Chunk
	for _, doc := range docs {
		all = append(all, c.ChunkDocument(doc)...)
	}
	return all
}
