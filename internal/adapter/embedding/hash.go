package embedding

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimension is the bucket count for the hashed embedder. Wide enough
// that unrelated terms rarely collide on small corpora.
const DefaultDimension = 256

// HashEmbedder maps text to a fixed-dimensional vector by hashing lowercased
// terms into buckets and L2-normalising the counts. Cosine similarity
// between two vectors then approximates lexical overlap between the texts.
// Fully deterministic: no randomness, no process state, no external calls.
// A stand-in for a learned embedding model, kept pinned so index results are
// reproducible.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates an embedder with the given bucket count.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashEmbedder{dimension: dimension}
}

func (e *HashEmbedder) Dimension() int { return e.dimension }

// Embed returns the normalised term-frequency vector for text. Empty or
// token-free text yields the zero vector.
func (e *HashEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dimension)
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}
	for _, token := range tokens {
		vec[e.bucket(token)]++
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (e *HashEmbedder) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(e.dimension))
}

// Cosine returns the cosine similarity of two vectors, defined as 0 when
// either vector is zero or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Tokenize lowercases text and splits it into word tokens. Apostrophes stay
// inside tokens so contractions hash as one term.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
