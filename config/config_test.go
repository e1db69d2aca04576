package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunking.Default != "fixed" {
		t.Errorf("expected chunking default 'fixed', got %q", cfg.Chunking.Default)
	}
	if cfg.Chunking.Window != 1200 {
		t.Errorf("expected Window=1200, got %d", cfg.Chunking.Window)
	}
	if cfg.Chunking.Overlap != 200 {
		t.Errorf("expected Overlap=200, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Index.Default != "none" {
		t.Errorf("expected index default 'none', got %q", cfg.Index.Default)
	}
	if cfg.Index.Dimension != 256 {
		t.Errorf("expected Dimension=256, got %d", cfg.Index.Dimension)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Server.Port)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "searchlab.yaml")

	content := `
chunking:
  default: semantic
  window: 800
index:
  default: faiss
search:
  top_k: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chunking.Default != "semantic" {
		t.Errorf("expected chunking default 'semantic', got %q", cfg.Chunking.Default)
	}
	if cfg.Chunking.Window != 800 {
		t.Errorf("expected Window=800, got %d", cfg.Chunking.Window)
	}
	if cfg.Index.Default != "faiss" {
		t.Errorf("expected index default 'faiss', got %q", cfg.Index.Default)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Search.TopK)
	}
	// untouched sections keep their defaults
	if cfg.Chunking.Overlap != 200 {
		t.Errorf("expected Overlap=200, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Server.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "searchlab.yaml")
	if err := os.WriteFile(configPath, []byte("chunking: ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chunking.Default != "fixed" {
		t.Error("directory without config should yield defaults")
	}

	content := "search:\n  top_k: 7\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "searchlab.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.TopK != 7 {
		t.Errorf("expected TopK=7, got %d", cfg.Search.TopK)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "searchlab.yaml")

	cfg := DefaultConfig()
	cfg.Index.Default = "llama_index"
	cfg.Benchmark.Workers = 2

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Index.Default != "llama_index" {
		t.Errorf("expected index default 'llama_index', got %q", loaded.Index.Default)
	}
	if loaded.Benchmark.Workers != 2 {
		t.Errorf("expected Workers=2, got %d", loaded.Benchmark.Workers)
	}
}
