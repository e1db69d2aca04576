package queryset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"searchlab/internal/domain"
)

// FileLoader reads a batch query file. JSON and YAML carry the same shape:
//
//	queries:
//	  - query: "installation steps"
//	    relevant_chunks: ["Run the installer and follow"]
//	    relevant_chunk_ids: []
//
// relevant_chunks are text snippets resolved to chunk ids per index build;
// relevant_chunk_ids address a specific build directly.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

type queryFile struct {
	Queries []queryEntry `json:"queries" yaml:"queries"`
}

type queryEntry struct {
	Query            string   `json:"query" yaml:"query"`
	RelevantChunks   []string `json:"relevant_chunks" yaml:"relevant_chunks"`
	RelevantChunkIDs []string `json:"relevant_chunk_ids" yaml:"relevant_chunk_ids"`
}

// Load parses the file by extension. Entries without query text are dropped.
func (l *FileLoader) Load() ([]domain.Query, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}

	var parsed queryFile
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse query file %s: %w", l.path, err)
		}
	default:
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse query file %s: %w", l.path, err)
		}
	}

	var queries []domain.Query
	for _, entry := range parsed.Queries {
		if strings.TrimSpace(entry.Query) == "" {
			continue
		}
		queries = append(queries, domain.Query{
			Text:             entry.Query,
			RelevantTexts:    entry.RelevantChunks,
			RelevantChunkIDs: entry.RelevantChunkIDs,
		})
	}
	return queries, nil
}
