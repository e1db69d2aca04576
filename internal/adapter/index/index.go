package index

import (
	"fmt"
	"sort"

	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// Strategy names form a closed set, validated by name at the boundary.
const (
	NameNone       = "none"
	NameFaiss      = "faiss"
	NameLlamaIndex = "llama_index"
)

// Names returns the recognized strategy names in declaration order.
func Names() []string {
	return []string{NameNone, NameFaiss, NameLlamaIndex}
}

// New returns the indexer registered under name. Vector-based strategies
// receive their embedder here; a nil embedder gets the default hashed one.
func New(name string, embedder port.Embedder) (port.Indexer, error) {
	if embedder == nil {
		embedder = embedding.NewHashEmbedder(embedding.DefaultDimension)
	}
	switch name {
	case NameNone:
		return &LinearIndexer{}, nil
	case NameFaiss:
		return &VectorIndexer{Embedder: embedder}, nil
	case NameLlamaIndex:
		return &HierarchicalIndexer{
			Embedder:      embedder,
			DocFanout:     DefaultDocFanout,
			SectionFanout: DefaultSectionFanout,
		}, nil
	default:
		return nil, fmt.Errorf("indexer %q: %w", name, domain.ErrUnknownStrategy)
	}
}

// sortHits orders hits by score descending, ties by ascending chunk id, and
// truncates to k. The tie rule keeps every strategy deterministic.
func sortHits(hits []domain.SearchHit, k int) domain.RankedResult {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func idSet(chunks []domain.Chunk) map[string]struct{} {
	ids := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		ids[c.ID] = struct{}{}
	}
	return ids
}
