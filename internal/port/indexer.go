package port

import "searchlab/internal/domain"

// Index is a queryable structure built once over a fixed chunk set.
// Search returns up to k hits, scores descending, ties broken by ascending
// chunk id. Implementations are deterministic for identical input.
type Index interface {
	Search(query string, k int) domain.RankedResult
	Len() int
	ChunkIDs() map[string]struct{}
}

// Indexer builds an Index from a chunk set. No incremental update is
// supported; a changed document set or strategy means a full rebuild.
type Indexer interface {
	Name() string
	Build(chunks []domain.Chunk) Index
}
