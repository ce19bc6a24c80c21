package utils

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMarkers are the stress and morph-boundary marks found in dictionary forms:
// the plus sign placed after a stressed vowel and the combining acute accent.
const DefaultMarkers = "+\u0301"

// apostropheReplacements unify the apostrophe variants used across dictionary sources.
var apostropheReplacements = map[string]string{
	"’": "'", // right single quotation mark
	"ʼ": "'", // modifier letter apostrophe
	"ʹ": "'", // modifier letter prime
}

// FormNormalizer wraps transform.Transformer to bring dictionary forms to a single spelling.
// Forms are decomposed so that marker accents can be removed, then recomposed, which keeps
// letters such as й and ў intact.
// This is not safe for concurrent use.
type FormNormalizer struct {
	transformer transform.Transformer
	replacer    *strings.Replacer
}

// NewFormNormalizer creates a new FormNormalizer that strips every rune in markers and
// applies the literal replacements after the apostrophe variants are unified.
func NewFormNormalizer(markers string, replacements map[string]string) *FormNormalizer {
	markerSet := make(map[rune]struct{})
	for _, r := range markers {
		markerSet[r] = struct{}{}
	}

	isMarker := func(r rune) bool {
		_, ok := markerSet[r]
		return ok
	}

	return &FormNormalizer{
		transformer: transform.Chain(
			norm.NFD,                                // Decompose so accents become separate runes
			runes.Remove(runes.Predicate(isMarker)), // Drop stress and boundary markers
			runes.Map(unicode.ToLower),              // Dictionary forms are compared case-insensitively
			norm.NFC,                                // Recompose the remaining marks
		),
		replacer: newReplacer(replacements),
	}
}

// Normalize cleans up a single dictionary form.
// Returns empty string if normalization fails or input is empty.
func (n *FormNormalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	result, _, err := transform.String(n.transformer, s)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(n.replacer.Replace(result))
}

// newReplacer builds a deterministic replacer, longest patterns first so that
// overlapping patterns always resolve the same way.
func newReplacer(extra map[string]string) *strings.Replacer {
	merged := make(map[string]string, len(apostropheReplacements)+len(extra))
	for from, to := range apostropheReplacements {
		merged[from] = to
	}

	for from, to := range extra {
		if from != "" {
			merged[from] = to
		}
	}

	keys := make([]string, 0, len(merged))
	for from := range merged {
		keys = append(keys, from)
	}

	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, from := range keys {
		pairs = append(pairs, from, merged[from])
	}

	return strings.NewReplacer(pairs...)
}
