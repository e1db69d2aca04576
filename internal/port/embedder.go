package port

// Embedder maps text to a fixed-dimensional vector. Deterministic and free
// of process state: identical text always yields the identical vector, and
// empty text yields the zero vector.
type Embedder interface {
	Embed(text string) []float64
	Dimension() int
}
