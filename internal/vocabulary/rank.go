package vocabulary

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Entry is a flexion with its corpus-wide occurrence count.
type Entry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// RankFlexions turns a count table into a deterministically ordered slice.
func RankFlexions(table map[string]int, order Order) []Entry {
	entries := make([]Entry, 0, len(table))
	for value, count := range table {
		entries = append(entries, Entry{Value: value, Count: count})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		byCount := cmp.Compare(b.Count, a.Count)
		byLength := cmp.Compare(utf8.RuneCountInString(b.Value), utf8.RuneCountInString(a.Value))

		if order == OrderLength {
			if byLength != 0 {
				return byLength
			}
			if byCount != 0 {
				return byCount
			}
		} else {
			if byCount != 0 {
				return byCount
			}
			if byLength != 0 {
				return byLength
			}
		}

		return strings.Compare(a.Value, b.Value)
	})

	return entries
}

// RankInvariants orders invariant words shortest first, ties broken lexicographically.
// Duplicates are removed.
func RankInvariants(words []string) []string {
	ranked := slices.Clone(words)

	slices.SortFunc(ranked, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	return slices.Compact(ranked)
}
