package chunker

import (
	"testing"

	"searchlab/internal/domain"
)

func TestSemanticParagraphs(t *testing.T) {
	doc := domain.Document{
		ID:   "doc1",
		Text: "first paragraph here\n\nsecond paragraph here\n\nthird one",
	}
	chunks := (&SemanticChunker{}).Split(doc)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	wantTexts := []string{"first paragraph here", "second paragraph here", "third one"}
	for i, chunk := range chunks {
		if chunk.Text != wantTexts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, chunk.Text, wantTexts[i])
		}
		if chunk.Heading != "" {
			t.Errorf("chunk %d heading = %q, want empty", i, chunk.Heading)
		}
	}
}

func TestSemanticMarkdownHeadings(t *testing.T) {
	doc := domain.Document{
		ID:   "doc1",
		Text: "# Setup\n\ninstall the binary\n\n## Usage\n\nrun it from the shell",
	}
	chunks := (&SemanticChunker{}).Split(doc)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != "install the binary" || chunks[1].Heading != "Setup" {
		t.Errorf("chunk 1 = %q under %q", chunks[1].Text, chunks[1].Heading)
	}
	if chunks[3].Text != "run it from the shell" || chunks[3].Heading != "Usage" {
		t.Errorf("chunk 3 = %q under %q", chunks[3].Text, chunks[3].Heading)
	}
}

func TestSemanticInlineSections(t *testing.T) {
	doc := domain.Document{
		ID:   "doc1",
		Text: "Intro. Section A: foo bar. Section B: baz qux.",
	}
	chunks := (&SemanticChunker{}).Split(doc)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	wantHeadings := []string{"", "Section A", "Section B"}
	wantTexts := []string{"Intro.", "Section A: foo bar.", "Section B: baz qux."}
	for i, chunk := range chunks {
		if chunk.Heading != wantHeadings[i] {
			t.Errorf("chunk %d heading = %q, want %q", i, chunk.Heading, wantHeadings[i])
		}
		if chunk.Text != wantTexts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, chunk.Text, wantTexts[i])
		}
	}
}

func TestSemanticEmptyDocument(t *testing.T) {
	chunks := (&SemanticChunker{}).Split(domain.Document{ID: "doc1", Text: "  \n\n  "})
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank document, got %d", len(chunks))
	}
}

func TestSemanticRuneOffsets(t *testing.T) {
	doc := domain.Document{
		ID:   "doc1",
		Text: "héading text\n\nsëcond paragraph",
	}
	chunks := (&SemanticChunker{}).Split(doc)

	runes := []rune(doc.Text)
	for i, chunk := range chunks {
		got := string(runes[chunk.StartOffset:chunk.EndOffset])
		if got != chunk.Text {
			t.Errorf("chunk %d offsets do not locate its text: %q vs %q", i, got, chunk.Text)
		}
	}
}

func TestMatchHeadingLine(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    string
		matches bool
	}{
		{"markdown", "## Getting Started", "Getting Started", true},
		{"colon_suffix", "Configuration:", "Configuration", true},
		{"numbered", "2.1 Error Handling", "2.1 Error Handling", true},
		{"all_caps", "INSTALLATION", "INSTALLATION", true},
		{"plain_prose", "This is just a sentence.", "", false},
		{"numbered_sentence", "2 cats walked in. Then they left.", "", false},
		{"long_colon_line", "This is a very long line of prose that should not be treated as a heading even though it ends with a colon:", "", false},
		{"blank", "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := matchHeadingLine(tc.line)
			if ok != tc.matches {
				t.Fatalf("matched = %v, want %v", ok, tc.matches)
			}
			if got != tc.want {
				t.Errorf("heading = %q, want %q", got, tc.want)
			}
		})
	}
}
