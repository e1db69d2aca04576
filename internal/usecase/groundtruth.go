package usecase

import (
	"strings"

	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
)

// Snippet overlap threshold: a chunk counts as a match for a ground-truth
// snippet when it contains the snippet verbatim (case-insensitive) or covers
// at least this share of the snippet's tokens.
const snippetOverlap = 0.6

// ResolveGroundTruth maps snippet-based ground truth onto the chunk ids of
// one concrete build. Chunk ids differ per chunker, so batch query files may
// describe relevance as text snippets instead; each snippet resolves to the
// best-matching chunk. Queries with explicit ids pass through untouched.
func ResolveGroundTruth(queries []domain.Query, chunks []domain.Chunk) []domain.Query {
	resolved := make([]domain.Query, len(queries))
	for i, q := range queries {
		resolved[i] = q
		if len(q.RelevantTexts) == 0 {
			continue
		}
		ids := append([]string(nil), q.RelevantChunkIDs...)
		for _, snippet := range q.RelevantTexts {
			if id, ok := matchSnippet(snippet, chunks); ok {
				ids = appendUnique(ids, id)
			}
		}
		resolved[i].RelevantChunkIDs = ids
	}
	return resolved
}

// matchSnippet returns the id of the chunk that best covers the snippet.
// Ties go to the lexically smallest chunk id so resolution is deterministic.
func matchSnippet(snippet string, chunks []domain.Chunk) (string, bool) {
	target := strings.ToLower(strings.TrimSpace(snippet))
	if target == "" {
		return "", false
	}
	targetTokens := tokenSet(target)

	bestID := ""
	bestScore := 0.0
	for _, chunk := range chunks {
		text := strings.ToLower(chunk.Text)
		score := 0.0
		if strings.Contains(text, target) {
			score = 1.0
		} else if len(targetTokens) > 0 {
			overlap := tokenOverlap(tokenSet(text), targetTokens)
			if overlap >= snippetOverlap {
				score = overlap
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && chunk.ID < bestID) {
			bestID = chunk.ID
			bestScore = score
		}
	}
	return bestID, bestScore > 0
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range embedding.Tokenize(text) {
		set[t] = struct{}{}
	}
	return set
}

func tokenOverlap(have, want map[string]struct{}) float64 {
	if len(want) == 0 {
		return 0
	}
	matched := 0
	for t := range want {
		if _, ok := have[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want))
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
