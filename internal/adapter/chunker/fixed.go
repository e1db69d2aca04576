package chunker

import "searchlab/internal/domain"

// FixedChunker slides a fixed-size window across the text with a constant
// overlap between consecutive windows. Offsets count runes so multibyte
// text chunks cleanly.
type FixedChunker struct {
	window  int
	overlap int
}

// NewFixedChunker creates a fixed-window chunker. Invalid geometry falls
// back to the defaults.
func NewFixedChunker(window, overlap int) *FixedChunker {
	if window <= 0 {
		window = DefaultWindow
	}
	if overlap <= 0 || overlap >= window {
		overlap = DefaultOverlap
		if overlap >= window {
			overlap = window / 2
		}
	}
	return &FixedChunker{window: window, overlap: overlap}
}

func (c *FixedChunker) Name() string { return NameFixed }

func (c *FixedChunker) Split(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.window {
		return []domain.Chunk{c.chunk(doc.ID, runes, 0, len(runes))}
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(runes) {
		end := start + c.window
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, c.chunk(doc.ID, runes, start, end))
		if end >= len(runes) {
			break
		}
		start = end - c.overlap
	}
	return chunks
}

func (c *FixedChunker) chunk(docID string, runes []rune, start, end int) domain.Chunk {
	return domain.Chunk{
		ID:          chunkID(docID, start, end),
		DocID:       docID,
		Text:        string(runes[start:end]),
		StartOffset: start,
		EndOffset:   end,
	}
}
