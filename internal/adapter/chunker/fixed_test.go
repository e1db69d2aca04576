package chunker

import (
	"strings"
	"testing"

	"searchlab/internal/domain"
)

func TestFixedShortDocument(t *testing.T) {
	c := NewFixedChunker(100, 20)
	chunks := c.Split(domain.Document{ID: "doc1", Text: "short text"})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short text" {
		t.Errorf("text = %q", chunks[0].Text)
	}
}

func TestFixedWindowGeometry(t *testing.T) {
	text := strings.Repeat("a", 25)
	c := NewFixedChunker(10, 3)
	chunks := c.Split(domain.Document{ID: "doc1", Text: text})

	// windows: [0,10) [7,17) [14,24) [21,25)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	wantStarts := []int{0, 7, 14, 21}
	wantEnds := []int{10, 17, 24, 25}
	for i, chunk := range chunks {
		if chunk.StartOffset != wantStarts[i] || chunk.EndOffset != wantEnds[i] {
			t.Errorf("chunk %d offsets = [%d, %d), want [%d, %d)",
				i, chunk.StartOffset, chunk.EndOffset, wantStarts[i], wantEnds[i])
		}
	}
}

func TestFixedReconstruction(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 60)
	c := NewFixedChunker(DefaultWindow, DefaultOverlap)
	chunks := c.Split(domain.Document{ID: "doc1", Text: text})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d runes, got %d", len([]rune(text)), len(chunks))
	}

	// stitching chunks back together minus the overlaps recovers the text
	rebuilt := chunks[0].Text
	for _, chunk := range chunks[1:] {
		rebuilt += string([]rune(chunk.Text)[DefaultOverlap:])
	}
	if rebuilt != text {
		t.Error("reconstructed text differs from original")
	}
}

func TestFixedMultibyteOffsets(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 10)
	runes := []rune(text)
	c := NewFixedChunker(50, 10)
	chunks := c.Split(domain.Document{ID: "doc1", Text: text})

	for i, chunk := range chunks {
		want := string(runes[chunk.StartOffset:chunk.EndOffset])
		if chunk.Text != want {
			t.Errorf("chunk %d text does not match its rune offsets", i)
		}
	}
}

func TestFixedDeterministic(t *testing.T) {
	text := strings.Repeat("deterministic output matters. ", 50)
	c := NewFixedChunker(DefaultWindow, DefaultOverlap)
	doc := domain.Document{ID: "doc1", Text: text}

	first := c.Split(doc)
	second := c.Split(doc)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d id differs across runs", i)
		}
	}
}

func TestFixedInvalidGeometryFallsBack(t *testing.T) {
	c := NewFixedChunker(0, -5)
	if c.window != DefaultWindow || c.overlap != DefaultOverlap {
		t.Errorf("geometry = %d/%d, want %d/%d", c.window, c.overlap, DefaultWindow, DefaultOverlap)
	}

	c = NewFixedChunker(100, 100)
	if c.overlap >= c.window {
		t.Errorf("overlap %d must stay below window %d", c.overlap, c.window)
	}
}
