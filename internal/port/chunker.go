package port

import "searchlab/internal/domain"

// Chunker splits one document into an ordered chunk sequence. Implementations
// are deterministic and total: the same document always yields byte-identical
// chunk boundaries, and no chunk text is empty unless the document is.
type Chunker interface {
	Name() string
	Split(doc domain.Document) []domain.Chunk
}
