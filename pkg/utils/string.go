package utils

import (
	"strings"
	"unicode"
)

// ContainsWhitespace reports whether s contains any Unicode whitespace rune.
func ContainsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// IsCompound reports whether a dictionary form is a multi-word or hyphenated entry.
// Such entries are never decomposed into stem and flexion.
func IsCompound(s string) bool {
	return strings.ContainsRune(s, '-') || ContainsWhitespace(s)
}

// RemoveDuplicates removes duplicate strings from a slice, keeping the first occurrence.
func RemoveDuplicates(strs []string) []string {
	seen := make(map[string]struct{}, len(strs))

	result := make([]string, 0, len(strs))

	for _, str := range strs {
		if _, exists := seen[str]; !exists {
			result = append(result, str)
			seen[str] = struct{}{}
		}
	}

	return result
}
