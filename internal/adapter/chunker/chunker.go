package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// Strategy names form a closed set, validated by name at the boundary.
const (
	NameAllInOne = "all_in_one"
	NameFixed    = "fixed"
	NameSemantic = "semantic"
)

// Default window geometry for the fixed strategy.
const (
	DefaultWindow  = 1200
	DefaultOverlap = 200
)

// Names returns the recognized strategy names in declaration order.
func Names() []string {
	return []string{NameAllInOne, NameFixed, NameSemantic}
}

// Geometry is the fixed strategy's window size and overlap, in runes. The
// zero value selects the package defaults.
type Geometry struct {
	Window  int
	Overlap int
}

// New returns the chunker registered under name with default geometry.
func New(name string) (port.Chunker, error) {
	return NewWithGeometry(name, Geometry{})
}

// NewWithGeometry returns the chunker registered under name. Geometry only
// affects the fixed strategy; the others ignore it.
func NewWithGeometry(name string, geo Geometry) (port.Chunker, error) {
	switch name {
	case NameAllInOne:
		return &AllInOneChunker{}, nil
	case NameFixed:
		return NewFixedChunker(geo.Window, geo.Overlap), nil
	case NameSemantic:
		return &SemanticChunker{}, nil
	default:
		return nil, fmt.Errorf("chunker %q: %w", name, domain.ErrUnknownStrategy)
	}
}

// chunkID derives a stable id from the chunk's provenance. Stable for the
// lifetime of one index build and reproducible across rebuilds of the same
// document set.
func chunkID(docID string, start, end int) string {
	data := fmt.Sprintf("%s:%d-%d", docID, start, end)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}
