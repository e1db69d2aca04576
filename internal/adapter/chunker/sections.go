package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Heading heuristics. A heading is either a whole line that looks like a
// section title, or an inline "Title:" marker after a sentence boundary.
// Thresholds are deliberately conservative: ordinary prose should not trip
// them.
var (
	markdownHeadingRE = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	numberedHeadingRE = regexp.MustCompile(`^\d+(?:\.\d+)*[.)\-]?\s+\S.*$`)
	upperHeadingRE    = regexp.MustCompile(`^[A-Z][A-Z0-9 ]{3,}$`)
	inlineHeadingRE   = regexp.MustCompile(`(?:^|[.!?]\s+)([A-Z][A-Za-z0-9 ]{0,48}):`)
)

const maxHeadingRunes = 64

// matchHeadingLine reports whether a full line is a section heading and
// returns the heading text attributed to the chunks that follow it.
func matchHeadingLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if m := markdownHeadingRE.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	short := utf8.RuneCountInString(trimmed) <= maxHeadingRunes
	if short && strings.HasSuffix(trimmed, ":") && strings.Count(trimmed, ":") == 1 {
		return strings.TrimSpace(strings.TrimSuffix(trimmed, ":")), true
	}
	if short && !strings.HasSuffix(trimmed, ".") && numberedHeadingRE.MatchString(trimmed) {
		return trimmed, true
	}
	if upperHeadingRE.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}

type inlineMark struct {
	start int // byte offset of the title within the line
	title string
}

// inlineHeadings finds "Title:" markers inside a line so that single-line
// documents still split at section boundaries.
func inlineHeadings(line string) []inlineMark {
	matches := inlineHeadingRE.FindAllStringSubmatchIndex(line, -1)
	marks := make([]inlineMark, 0, len(matches))
	for _, m := range matches {
		start, end := m[2], m[3]
		title := strings.TrimSpace(line[start:end])
		if title == "" {
			continue
		}
		marks = append(marks, inlineMark{start: start, title: title})
	}
	return marks
}
