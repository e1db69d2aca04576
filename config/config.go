package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for searchlab.
type Config struct {
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Index     IndexConfig     `yaml:"index"`
	Search    SearchConfig    `yaml:"search"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ChunkingConfig selects the default chunking strategy and the fixed-window
// geometry.
type ChunkingConfig struct {
	Default string `yaml:"default"`
	Window  int    `yaml:"window"`
	Overlap int    `yaml:"overlap"`
}

// IndexConfig selects the default indexing strategy and the embedder width.
type IndexConfig struct {
	Default   string `yaml:"default"`
	Dimension int    `yaml:"dimension"`
}

// SearchConfig holds live-search defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// BenchmarkConfig narrows the default benchmark matrix and the document
// discovery patterns.
type BenchmarkConfig struct {
	Chunkers []string `yaml:"chunkers"` // empty = all
	Indexers []string `yaml:"indexers"` // empty = all
	TopK     int      `yaml:"top_k"`
	Workers  int      `yaml:"workers"` // 0 = one per CPU
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	DBPath   string   `yaml:"db_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Default: "fixed",
			Window:  1200,
			Overlap: 200,
		},
		Index: IndexConfig{
			Default:   "none",
			Dimension: 256,
		},
		Search: SearchConfig{
			TopK: 5,
		},
		Benchmark: BenchmarkConfig{
			TopK:     5,
			Workers:  0,
			Excludes: []string{"**/.git/**", "**/node_modules/**"},
			DBPath:   "searchlab-runs.db",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for searchlab.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "searchlab.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
