package chunker

import (
	"strings"
	"unicode/utf8"

	"searchlab/internal/domain"
)

// SemanticChunker splits at detected heading boundaries and at blank-line
// paragraph breaks within each section. Every chunk carries the nearest
// preceding heading, empty when none was detected before it.
type SemanticChunker struct{}

func (c *SemanticChunker) Name() string { return NameSemantic }

// span is a half-open byte range into the document text.
type span struct {
	start   int
	end     int
	heading string
}

func (c *SemanticChunker) Split(doc domain.Document) []domain.Chunk {
	text := doc.Text
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var spans []span
	heading := ""
	blockStart, blockEnd := -1, -1

	flush := func() {
		if blockStart >= 0 && blockEnd > blockStart {
			spans = append(spans, span{start: blockStart, end: blockEnd, heading: heading})
		}
		blockStart, blockEnd = -1, -1
	}
	extend := func(start, end int) {
		if blockStart < 0 {
			blockStart = start
		}
		blockEnd = end
	}

	off := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		lineStart := off
		off += len(line)
		content := strings.TrimSuffix(line, "\n")

		if strings.TrimSpace(content) == "" {
			flush()
			continue
		}

		if title, ok := matchHeadingLine(content); ok {
			flush()
			heading = title
			extend(lineStart, lineStart+len(content))
			continue
		}

		segStart := 0
		for _, mark := range inlineHeadings(content) {
			if mark.start > segStart {
				extend(lineStart+segStart, lineStart+mark.start)
			}
			flush()
			heading = mark.title
			segStart = mark.start
		}
		extend(lineStart+segStart, lineStart+len(content))
	}
	flush()

	chunks := make([]domain.Chunk, 0, len(spans))
	for _, s := range spans {
		chunk, ok := c.chunkFromSpan(doc, text, s)
		if ok {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// chunkFromSpan trims surrounding whitespace by tightening the span and
// converts byte offsets to rune offsets.
func (c *SemanticChunker) chunkFromSpan(doc domain.Document, text string, s span) (domain.Chunk, bool) {
	raw := text[s.start:s.end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Chunk{}, false
	}
	lead := strings.Index(raw, trimmed)
	startByte := s.start + lead

	startRune := utf8.RuneCountInString(text[:startByte])
	endRune := startRune + utf8.RuneCountInString(trimmed)
	return domain.Chunk{
		ID:          chunkID(doc.ID, startRune, endRune),
		DocID:       doc.ID,
		Text:        trimmed,
		StartOffset: startRune,
		EndOffset:   endRune,
		Heading:     s.heading,
	}, true
}
