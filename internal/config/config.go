package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the pipeline needs, built once at startup and
// passed down explicitly. Business logic never reads the environment.
type Config struct {
	Ollama    OllamaConfig
	Chunking  ChunkingConfig
	Retrieval RetrievalConfig
	Database  DatabaseConfig
	Log       LogConfig
}

type OllamaConfig struct {
	BaseURL    string
	EmbedModel string
	QueryModel string
}

type ChunkingConfig struct {
	Size    int
	Overlap int
}

type RetrievalConfig struct {
	TopK          int
	MinSimilarity float32
}

type DatabaseConfig struct {
	Collection string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
		},
		Chunking: ChunkingConfig{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK:          4,
			MinSimilarity: 0.0,
		},
		Database: DatabaseConfig{
			Collection: "documents",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
//
// Required: OLLAMA_EMBEDDING_MODEL, OLLAMA_QUERY_MODEL.
// Optional with defaults: OLLAMA_BASE_URL, CHUNK_SIZE, CHUNK_OVERLAP,
// RETRIEVER_TOP_K, RETRIEVER_MIN_SIMILARITY, VECTOR_DB_COLLECTION_NAME,
// LOG_LEVEL.
func Load() (Config, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	embedModel := os.Getenv("OLLAMA_EMBEDDING_MODEL")
	if embedModel == "" {
		return Config{}, fmt.Errorf("missing required environment variable: OLLAMA_EMBEDDING_MODEL")
	}
	queryModel := os.Getenv("OLLAMA_QUERY_MODEL")
	if queryModel == "" {
		return Config{}, fmt.Errorf("missing required environment variable: OLLAMA_QUERY_MODEL")
	}
	cfg.Ollama.EmbedModel = embedModel
	cfg.Ollama.QueryModel = queryModel

	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := os.Getenv("VECTOR_DB_COLLECTION_NAME"); v != "" {
		cfg.Database.Collection = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	var err error
	if cfg.Chunking.Size, err = intEnv("CHUNK_SIZE", cfg.Chunking.Size); err != nil {
		return Config{}, err
	}
	if cfg.Chunking.Overlap, err = intEnv("CHUNK_OVERLAP", cfg.Chunking.Overlap); err != nil {
		return Config{}, err
	}
	if cfg.Retrieval.TopK, err = intEnv("RETRIEVER_TOP_K", cfg.Retrieval.TopK); err != nil {
		return Config{}, err
	}
	if cfg.Retrieval.MinSimilarity, err = floatEnv("RETRIEVER_MIN_SIMILARITY", cfg.Retrieval.MinSimilarity); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Chunking.Size <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", cfg.Chunking.Size)
	}
	if cfg.Chunking.Overlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Chunking.Overlap >= cfg.Chunking.Size {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.Chunking.Overlap, cfg.Chunking.Size)
	}
	if cfg.Retrieval.TopK <= 0 {
		return fmt.Errorf("RETRIEVER_TOP_K must be positive, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.MinSimilarity < 0 || cfg.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("RETRIEVER_MIN_SIMILARITY must be between 0 and 1, got %g", cfg.Retrieval.MinSimilarity)
	}
	return nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: must be an integer", name, v)
	}
	return n, nil
}

func floatEnv(name string, def float32) (float32, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: must be a number", name, v)
	}
	return float32(f), nil
}
