package index

import (
	"strings"

	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// LinearIndexer is the correctness baseline: no preprocessing beyond storing
// chunk text, linear scan per search.
type LinearIndexer struct{}

func (ix *LinearIndexer) Name() string { return NameNone }

func (ix *LinearIndexer) Build(chunks []domain.Chunk) port.Index {
	entries := make([]linearEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = linearEntry{id: c.ID, lower: strings.ToLower(c.Text)}
	}
	return &linearIndex{entries: entries, ids: idSet(chunks)}
}

type linearEntry struct {
	id    string
	lower string
}

type linearIndex struct {
	entries []linearEntry
	ids     map[string]struct{}
}

func (ix *linearIndex) Len() int                      { return len(ix.entries) }
func (ix *linearIndex) ChunkIDs() map[string]struct{} { return ix.ids }

// Search scores each chunk by the number of distinct query terms it contains
// as a case-insensitive substring.
func (ix *linearIndex) Search(query string, k int) domain.RankedResult {
	terms := uniqueTerms(query)
	if len(terms) == 0 || len(ix.entries) == 0 || k <= 0 {
		return nil
	}
	var hits []domain.SearchHit
	for _, entry := range ix.entries {
		matched := 0
		for _, term := range terms {
			if strings.Contains(entry.lower, term) {
				matched++
			}
		}
		if matched > 0 {
			hits = append(hits, domain.SearchHit{ChunkID: entry.id, Score: float64(matched)})
		}
	}
	return sortHits(hits, k)
}

func uniqueTerms(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, t := range embedding.Tokenize(query) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}
