package index

import (
	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// VectorIndexer embeds every chunk at build time and answers queries by
// brute-force cosine similarity over the stored vectors. A flat in-memory
// stand-in for a FAISS-style index.
type VectorIndexer struct {
	Embedder port.Embedder
}

func (ix *VectorIndexer) Name() string { return NameFaiss }

func (ix *VectorIndexer) Build(chunks []domain.Chunk) port.Index {
	vectors := make([]chunkVector, len(chunks))
	for i, c := range chunks {
		vectors[i] = chunkVector{id: c.ID, vec: ix.Embedder.Embed(c.Text)}
	}
	return &vectorIndex{embedder: ix.Embedder, vectors: vectors, ids: idSet(chunks)}
}

type chunkVector struct {
	id  string
	vec []float64
}

type vectorIndex struct {
	embedder port.Embedder
	vectors  []chunkVector
	ids      map[string]struct{}
}

func (ix *vectorIndex) Len() int                      { return len(ix.vectors) }
func (ix *vectorIndex) ChunkIDs() map[string]struct{} { return ix.ids }

func (ix *vectorIndex) Search(query string, k int) domain.RankedResult {
	if len(ix.vectors) == 0 || k <= 0 {
		return nil
	}
	queryVec := ix.embedder.Embed(query)
	var hits []domain.SearchHit
	for _, cv := range ix.vectors {
		score := embedding.Cosine(queryVec, cv.vec)
		if score > 0 {
			hits = append(hits, domain.SearchHit{ChunkID: cv.id, Score: score})
		}
	}
	return sortHits(hits, k)
}
