package flexion

import "unicode/utf8"

// CommonPrefix returns the longest leading substring shared by every word.
// Words are compared rune by rune, so the result never ends inside a multi-byte character.
// A single word is returned unchanged and an empty input yields an empty prefix.
func CommonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}

	prefix := words[0]
	for _, word := range words[1:] {
		prefix = commonPrefixPair(prefix, word)
		if prefix == "" {
			break
		}
	}

	return prefix
}

// commonPrefixPair returns the longest common rune prefix of a and b.
func commonPrefixPair(a, b string) string {
	end := 0

	for end < len(a) && end < len(b) {
		_, sizeA := utf8.DecodeRuneInString(a[end:])
		_, sizeB := utf8.DecodeRuneInString(b[end:])

		// Comparing the encoded bytes also keeps distinct invalid sequences apart
		if sizeA != sizeB || a[end:end+sizeA] != b[end:end+sizeB] {
			break
		}

		end += sizeA
	}

	return a[:end]
}
