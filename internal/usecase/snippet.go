package usecase

import "strings"

// firstSnippet collapses whitespace and returns the leading maxChars runes.
func firstSnippet(text string, maxChars int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return ""
	}
	runes := []rune(cleaned)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return string(runes)
}

// queryFromSnippet keeps the first maxWords words longer than two runes,
// which drops articles and particles without a stopword list.
func queryFromSnippet(snippet string, maxWords int) string {
	var words []string
	for _, word := range strings.Fields(snippet) {
		if len([]rune(word)) > 2 {
			words = append(words, word)
		}
		if len(words) == maxWords {
			break
		}
	}
	if len(words) == 0 {
		return snippet
	}
	return strings.Join(words, " ")
}
