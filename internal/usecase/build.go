package usecase

import (
	"fmt"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/adapter/index"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// BuildIndex chunks the documents with the named chunker and builds an index
// with the named indexer, using the default fixed-window geometry. Both
// names are validated against the closed strategy sets before any work
// happens; an index always reflects exactly one (document set, chunker,
// indexer) triple.
func BuildIndex(docs []domain.Document, chunkerName, indexerName string, embedder port.Embedder) (port.Index, []domain.Chunk, error) {
	return BuildIndexWithGeometry(docs, chunkerName, indexerName, chunker.Geometry{}, embedder)
}

// BuildIndexWithGeometry is BuildIndex with an explicit fixed-window
// geometry, carried from configuration. The zero geometry means defaults.
func BuildIndexWithGeometry(docs []domain.Document, chunkerName, indexerName string, geo chunker.Geometry, embedder port.Embedder) (port.Index, []domain.Chunk, error) {
	chk, err := chunker.NewWithGeometry(chunkerName, geo)
	if err != nil {
		return nil, nil, err
	}
	idx, err := index.New(indexerName, embedder)
	if err != nil {
		return nil, nil, err
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, chk.Split(doc)...)
	}
	return idx.Build(chunks), chunks, nil
}

// ValidateStrategies checks a chunker and indexer name pair without building
// anything. Used by the benchmark harness to reject a bad matrix up front.
func ValidateStrategies(chunkerName, indexerName string) error {
	if _, err := chunker.New(chunkerName); err != nil {
		return fmt.Errorf("validate strategies: %w", err)
	}
	if _, err := index.New(indexerName, nil); err != nil {
		return fmt.Errorf("validate strategies: %w", err)
	}
	return nil
}
