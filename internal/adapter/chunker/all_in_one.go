package chunker

import (
	"unicode/utf8"

	"searchlab/internal/domain"
)

// AllInOneChunker emits a single chunk spanning the whole document. The
// baseline strategy: no splitting cost, no locality.
type AllInOneChunker struct{}

func (c *AllInOneChunker) Name() string { return NameAllInOne }

func (c *AllInOneChunker) Split(doc domain.Document) []domain.Chunk {
	if doc.Text == "" {
		return nil
	}
	end := utf8.RuneCountInString(doc.Text)
	return []domain.Chunk{{
		ID:          chunkID(doc.ID, 0, end),
		DocID:       doc.ID,
		Text:        doc.Text,
		StartOffset: 0,
		EndOffset:   end,
	}}
}
