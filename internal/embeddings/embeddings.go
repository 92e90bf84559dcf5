// Package embeddings maps chunk text to fixed-dimension vectors through a
// pluggable provider: OpenAI's API, a local Ollama instance, or a
// deterministic mock for tests and offline runs.
package embeddings

import (
	"context"
	"fmt"
	"strings"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedText generates an embedding vector for one text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for several texts in one call where
	// the provider supports it.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the width of the vectors this embedder produces.
	Dimension() int
}

// Config selects and tunes an embedding provider.
type Config struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Dimension int    `mapstructure:"dimension"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Providers returns the valid provider names.
func Providers() []string {
	return []string{"openai", "ollama", "mock"}
}

// New builds an Embedder for the configured provider. An unknown provider
// name is rejected with the valid set in the error.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai embedder requires an api_key")
		}
		return newOpenAIEmbedder(cfg), nil
	case "ollama":
		return newOllamaEmbedder(cfg), nil
	case "mock":
		dim := cfg.Dimension
		if dim <= 0 {
			dim = 384
		}
		return NewMock(dim), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q, valid providers: %s",
			cfg.Provider, strings.Join(Providers(), ", "))
	}
}
