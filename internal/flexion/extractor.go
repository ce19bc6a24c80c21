package flexion

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnknownStrategy      = errors.New("unknown extraction strategy")
	ErrInvalidMinStemLength = errors.New("minimum stem length must not be negative")
)

// Strategy selects how the stem boundary of a variant is inferred.
type Strategy string

const (
	// StrategyPairwise clusters forms by the common prefix of every pair of forms.
	StrategyPairwise Strategy = "pairwise"
	// StrategyCommon uses the single prefix shared by all forms of the variant.
	StrategyCommon Strategy = "common"
)

// PrefixGroups maps a candidate stem to the forms that share it.
// Members keep their first-seen order and never repeat.
type PrefixGroups map[string][]string

// Extractor derives flexion strings from the forms of one lexical variant.
type Extractor struct {
	strategy      Strategy
	minStemLength int
}

// NewExtractor creates an Extractor. Groups whose stem has fewer than minStemLength
// runes emit nothing, so a value of 1 guarantees that no whole form is reported as a flexion.
func NewExtractor(strategy Strategy, minStemLength int) (*Extractor, error) {
	switch strategy {
	case StrategyPairwise, StrategyCommon:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	if minStemLength < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMinStemLength, minStemLength)
	}

	return &Extractor{
		strategy:      strategy,
		minStemLength: minStemLength,
	}, nil
}

// Strategy returns the configured extraction strategy.
func (e *Extractor) Strategy() Strategy {
	return e.strategy
}

// Extract returns the sorted, deduplicated flexions of a variant's forms.
// The forms are expected to be normalized already; empty suffixes are never returned.
func (e *Extractor) Extract(forms []string) []string {
	if len(forms) < 2 {
		return nil
	}

	if e.strategy == StrategyCommon {
		return e.extractCommon(forms)
	}

	groups := GroupByPrefix(forms)
	groups = DropRedundantPrefixes(groups)

	return DeriveFlexions(groups, e.minStemLength)
}

// extractCommon strips the prefix shared by all forms.
func (e *Extractor) extractCommon(forms []string) []string {
	prefix := CommonPrefix(forms)
	if utf8.RuneCountInString(prefix) < e.minStemLength {
		return nil
	}

	return DeriveFlexions(PrefixGroups{prefix: forms}, e.minStemLength)
}

// GroupByPrefix clashes every unordered pair of distinct forms and files both forms
// under the common prefix of the pair. A prefix accumulates forms from many pairs.
func GroupByPrefix(forms []string) PrefixGroups {
	groups := make(PrefixGroups)
	members := make(map[string]map[string]struct{})

	add := func(prefix, form string) {
		seen, ok := members[prefix]
		if !ok {
			seen = make(map[string]struct{})
			members[prefix] = seen
		}

		if _, exists := seen[form]; exists {
			return
		}

		seen[form] = struct{}{}
		groups[prefix] = append(groups[prefix], form)
	}

	for i := range forms {
		for j := i + 1; j < len(forms); j++ {
			if forms[i] == forms[j] {
				continue
			}

			prefix := commonPrefixPair(forms[i], forms[j])
			add(prefix, forms[i])
			add(prefix, forms[j])
		}
	}

	return groups
}

// DropRedundantPrefixes removes every group whose prefix is a proper prefix of another
// group's prefix. The redundant set is computed against the full key set before anything
// is removed, so two shorter keys subsumed by the same longer key are both dropped.
// The input is left untouched.
func DropRedundantPrefixes(groups PrefixGroups) PrefixGroups {
	redundant := make(map[string]struct{})

	for prefix := range groups {
		for other := range groups {
			if prefix != other && strings.HasPrefix(other, prefix) {
				redundant[prefix] = struct{}{}
				break
			}
		}
	}

	kept := make(PrefixGroups, len(groups)-len(redundant))
	for prefix, forms := range groups {
		if _, drop := redundant[prefix]; !drop {
			kept[prefix] = forms
		}
	}

	return kept
}

// DeriveFlexions strips each group's prefix from its forms and returns the sorted,
// deduplicated remainders. Groups with a stem shorter than minStemLength runes and
// empty remainders are skipped.
func DeriveFlexions(groups PrefixGroups, minStemLength int) []string {
	seen := make(map[string]struct{})

	for prefix, forms := range groups {
		if utf8.RuneCountInString(prefix) < minStemLength {
			continue
		}

		for _, form := range forms {
			suffix, ok := strings.CutPrefix(form, prefix)
			if !ok || suffix == "" {
				continue
			}

			seen[suffix] = struct{}{}
		}
	}

	flexions := make([]string, 0, len(seen))
	for suffix := range seen {
		flexions = append(flexions, suffix)
	}

	slices.Sort(flexions)

	return flexions
}
