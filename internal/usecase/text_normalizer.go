package usecase

import (
	"regexp"
	"strings"
)

var multiSpacePattern = regexp.MustCompile(`\s+`)

// shortQueryWords is how many leading words of a query are kept by ShortQuery
const shortQueryWords = 4

// normalizeText prepares a product name for keyword matching: newlines and
// runs of whitespace collapse to one space, the result is trimmed and lowercased.
func normalizeText(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// containsAny reports whether normalized text contains any of the terms
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// countHits returns how many of the terms occur in normalized text
func countHits(text string, terms []string) int {
	hits := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			hits++
		}
	}
	return hits
}

// ShortQuery keeps the first few words of a long product title, which is
// usually enough for the catalog search to find the same product.
func ShortQuery(query string) string {
	words := strings.Fields(query)
	if len(words) > shortQueryWords {
		words = words[:shortQueryWords]
	}
	return strings.Join(words, " ")
}

// dedupe removes empty strings and repeats while preserving first-seen order
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
