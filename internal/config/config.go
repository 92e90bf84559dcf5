// Package config loads the pipeline configuration from a YAML file with
// viper, applying defaults for everything so a minimal file (or none at
// all) still yields a runnable setup.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ragmill/internal/chunker"
	"github.com/ragmill/internal/embeddings"
)

// VectorDBConfig selects and addresses the vector store backend.
type VectorDBConfig struct {
	Backend    string `mapstructure:"backend"` // "qdrant" or "memory"
	Address    string `mapstructure:"address"` // Qdrant gRPC address
	Collection string `mapstructure:"collection"`
}

// RedisConfig addresses the Redis instance backing the job queue.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
	QueueKey string `mapstructure:"queue_key"`
}

// Config is the full pipeline configuration.
type Config struct {
	Name        string            `mapstructure:"name"`
	SourceDir   string            `mapstructure:"source_dir"`
	Recursive   bool              `mapstructure:"recursive"`
	CatalogPath string            `mapstructure:"catalog_path"`
	Workers     int               `mapstructure:"workers"`
	Chunking    chunker.Config    `mapstructure:"chunking"`
	Embeddings  embeddings.Config `mapstructure:"embeddings"`
	VectorDB    VectorDBConfig    `mapstructure:"vectordb"`
	Redis       RedisConfig       `mapstructure:"redis"`
}

// Load reads configuration from configPath (YAML). An empty path loads pure
// defaults. The OpenAI API key is taken from the OPENAI_API_KEY environment
// variable when the file does not set one, so keys stay out of config files.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("name", "ragmill")
	v.SetDefault("source_dir", "./data/raw")
	v.SetDefault("recursive", true)
	v.SetDefault("catalog_path", "./ragmill.db")
	v.SetDefault("workers", 4)

	v.SetDefault("chunking.chunk_size", 800)
	v.SetDefault("chunking.chunk_overlap", 100)
	v.SetDefault("chunking.min_chunk_size", 100)
	v.SetDefault("chunking.strategy", chunker.StrategySimple)

	v.SetDefault("embeddings.provider", "mock")
	v.SetDefault("embeddings.model", "")
	v.SetDefault("embeddings.batch_size", 32)

	v.SetDefault("vectordb.backend", "memory")
	v.SetDefault("vectordb.address", "localhost:6334")
	v.SetDefault("vectordb.collection", "documents")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue_key", "ragmill:jobs")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Embeddings.APIKey == "" {
		cfg.Embeddings.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline cannot run with. Chunking
// gets the full construction-time validation so a bad strategy or overlap
// fails here, before any document is touched.
func (c *Config) Validate() error {
	if err := c.Chunking.Validate(); err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}
	switch c.VectorDB.Backend {
	case "qdrant", "memory":
	default:
		return fmt.Errorf("unknown vectordb backend %q, valid backends: qdrant, memory", c.VectorDB.Backend)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
