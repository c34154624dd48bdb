package config

import (
	"strings"
	"testing"
)

// setRequired sets the two mandatory model variables so tests can focus
// on the knob under test.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text")
	t.Setenv("OLLAMA_QUERY_MODEL", "llama3.2")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %q, want default", cfg.Ollama.BaseURL)
	}
	if cfg.Chunking.Size != 1000 || cfg.Chunking.Overlap != 200 {
		t.Errorf("Chunking = %+v, want size 1000 overlap 200", cfg.Chunking)
	}
	if cfg.Retrieval.TopK != 4 {
		t.Errorf("TopK = %d, want 4", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.MinSimilarity != 0 {
		t.Errorf("MinSimilarity = %f, want 0", cfg.Retrieval.MinSimilarity)
	}
	if cfg.Database.Collection != "documents" {
		t.Errorf("Collection = %q, want %q", cfg.Database.Collection, "documents")
	}
}

func TestLoad_MissingEmbeddingModel(t *testing.T) {
	t.Setenv("OLLAMA_EMBEDDING_MODEL", "")
	t.Setenv("OLLAMA_QUERY_MODEL", "llama3.2")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing OLLAMA_EMBEDDING_MODEL")
	}
	if !strings.Contains(err.Error(), "OLLAMA_EMBEDDING_MODEL") {
		t.Errorf("error = %q, want it to name the missing variable", err)
	}
}

func TestLoad_MissingQueryModel(t *testing.T) {
	t.Setenv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text")
	t.Setenv("OLLAMA_QUERY_MODEL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing OLLAMA_QUERY_MODEL")
	}
	if !strings.Contains(err.Error(), "OLLAMA_QUERY_MODEL") {
		t.Errorf("error = %q, want it to name the missing variable", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OLLAMA_BASE_URL", "http://10.0.0.5:11434")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("RETRIEVER_TOP_K", "8")
	t.Setenv("RETRIEVER_MIN_SIMILARITY", "0.4")
	t.Setenv("VECTOR_DB_COLLECTION_NAME", "notes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Ollama.BaseURL != "http://10.0.0.5:11434" {
		t.Errorf("BaseURL = %q", cfg.Ollama.BaseURL)
	}
	if cfg.Chunking.Size != 500 || cfg.Chunking.Overlap != 50 {
		t.Errorf("Chunking = %+v", cfg.Chunking)
	}
	if cfg.Retrieval.TopK != 8 {
		t.Errorf("TopK = %d, want 8", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.MinSimilarity < 0.39 || cfg.Retrieval.MinSimilarity > 0.41 {
		t.Errorf("MinSimilarity = %f, want 0.4", cfg.Retrieval.MinSimilarity)
	}
	if cfg.Database.Collection != "notes" {
		t.Errorf("Collection = %q, want %q", cfg.Database.Collection, "notes")
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"chunk size not a number", "CHUNK_SIZE", "abc"},
		{"overlap not a number", "CHUNK_OVERLAP", "1.5x"},
		{"top-k not a number", "RETRIEVER_TOP_K", "four"},
		{"similarity not a number", "RETRIEVER_MIN_SIMILARITY", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error = %q, want it to name %s", err, tt.key)
			}
		})
	}
}

func TestLoad_InvalidRanges(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero chunk size", "CHUNK_SIZE", "0"},
		{"overlap equals size", "CHUNK_OVERLAP", "1000"},
		{"negative overlap", "CHUNK_OVERLAP", "-1"},
		{"zero top-k", "RETRIEVER_TOP_K", "0"},
		{"similarity above one", "RETRIEVER_MIN_SIMILARITY", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
