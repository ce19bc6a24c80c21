package vocabulary

import (
	"errors"
	"strings"

	"github.com/robalyx/stemdata/internal/aggregate"
	"github.com/robalyx/stemdata/pkg/utils"
	"go.uber.org/zap"
)

// ErrNilAccumulator is returned when Build is called without aggregation results.
var ErrNilAccumulator = errors.New("accumulator is nil")

// DropStats counts the entries removed by each filter pass.
type DropStats struct {
	BelowThreshold     int `json:"belowThreshold"`
	Sanitized          int `json:"sanitized"`
	ExcludedFlexions   int `json:"excludedFlexions"`
	RedundantSuffixes  int `json:"redundantSuffixes"`
	ExcludedInvariants int `json:"excludedInvariants"`
}

// Vocabulary is the final, ranked output of a build.
type Vocabulary struct {
	Flexions   []Entry
	Invariants []string
	// TotalCount is the sum of all raw flexion counts before filtering.
	TotalCount int
	Dropped    DropStats
}

// Share returns the fraction of all raw flexion occurrences taken by e.
func (v *Vocabulary) Share(e Entry) float64 {
	if v.TotalCount == 0 {
		return 0
	}
	return float64(e.Count) / float64(v.TotalCount)
}

// Filter ranks and prunes aggregation results.
type Filter struct {
	opts              Options
	excludeFlexions   map[string]struct{}
	excludeInvariants map[string]struct{}
	logger            *zap.Logger
}

// NewFilter creates a new Filter. Options are validated here so that invalid
// settings are rejected before any aggregation work starts.
func NewFilter(opts Options, logger *zap.Logger) (*Filter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Filter{
		opts:              opts,
		excludeFlexions:   toSet(opts.ExcludeFlexions),
		excludeInvariants: toSet(opts.ExcludeInvariants),
		logger:            logger.Named("vocabulary"),
	}, nil
}

// Build produces the vocabulary. The passes run in a fixed order: rank, frequency
// threshold, sanitization and exclusions, then the optional suffix-redundancy pass.
// Building twice from the same accumulator yields identical output.
func (f *Filter) Build(acc *aggregate.Accumulator) (*Vocabulary, error) {
	if acc == nil {
		return nil, ErrNilAccumulator
	}

	table := acc.Flexions()
	vocab := &Vocabulary{}

	maxCount := 0
	for _, count := range table {
		vocab.TotalCount += count
		maxCount = max(maxCount, count)
	}

	base := maxCount
	if f.opts.ShareBase == ShareBaseTotal {
		base = vocab.TotalCount
	}

	ranked := RankFlexions(table, f.opts.Order)
	flexions := make([]Entry, 0, len(ranked))
	seen := make(map[string]struct{}, len(ranked))

	for _, entry := range ranked {
		if base > 0 && float64(entry.Count)/float64(base) < f.opts.MinShare {
			vocab.Dropped.BelowThreshold++
			continue
		}

		value, ok := sanitize(entry.Value)
		if !ok {
			vocab.Dropped.Sanitized++
			continue
		}

		if _, excluded := f.excludeFlexions[value]; excluded {
			vocab.Dropped.ExcludedFlexions++
			continue
		}

		if _, dup := seen[value]; dup {
			vocab.Dropped.Sanitized++
			continue
		}
		seen[value] = struct{}{}

		flexions = append(flexions, Entry{Value: value, Count: entry.Count})
	}

	if f.opts.SuffixRedundancy {
		before := len(flexions)
		flexions = DropRedundantSuffixes(flexions)
		vocab.Dropped.RedundantSuffixes = before - len(flexions)
	}

	vocab.Flexions = flexions
	vocab.Invariants = f.buildInvariants(acc.Invariants(), &vocab.Dropped)

	f.logger.Info("Vocabulary built",
		zap.Int("rawFlexions", len(table)),
		zap.Int("flexions", len(vocab.Flexions)),
		zap.Int("invariants", len(vocab.Invariants)),
		zap.Int("belowThreshold", vocab.Dropped.BelowThreshold),
		zap.Int("sanitized", vocab.Dropped.Sanitized),
		zap.Int("excludedFlexions", vocab.Dropped.ExcludedFlexions),
		zap.Int("redundantSuffixes", vocab.Dropped.RedundantSuffixes),
		zap.Int("excludedInvariants", vocab.Dropped.ExcludedInvariants))

	return vocab, nil
}

// buildInvariants merges the curated invariants, applies exclusions and ranks the result.
func (f *Filter) buildInvariants(words []string, dropped *DropStats) []string {
	candidates := make([]string, 0, len(words)+len(f.opts.ExtraInvariants))
	candidates = append(candidates, words...)
	candidates = append(candidates, f.opts.ExtraInvariants...)

	kept := make([]string, 0, len(candidates))
	for _, word := range candidates {
		value, ok := sanitize(word)
		if !ok {
			continue
		}

		if _, excluded := f.excludeInvariants[value]; excluded {
			dropped.ExcludedInvariants++
			continue
		}

		kept = append(kept, value)
	}

	return RankInvariants(kept)
}

// DropRedundantSuffixes removes every flexion that is a proper suffix of another
// flexion in the set. The order of the survivors is preserved. Since the suffix
// relation is transitive a single pass reaches the fixed point.
func DropRedundantSuffixes(entries []Entry) []Entry {
	present := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		present[entry.Value] = struct{}{}
	}

	redundant := make(map[string]struct{})
	for _, entry := range entries {
		// Walk every proper suffix of the value, one rune boundary at a time
		for i := range entry.Value {
			if i == 0 {
				continue
			}

			if _, ok := present[entry.Value[i:]]; ok {
				redundant[entry.Value[i:]] = struct{}{}
			}
		}
	}

	kept := make([]Entry, 0, len(entries)-len(redundant))
	for _, entry := range entries {
		if _, drop := redundant[entry.Value]; !drop {
			kept = append(kept, entry)
		}
	}

	return kept
}

// sanitize trims a value and rejects empty values and values with inner whitespace.
func sanitize(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || utils.ContainsWhitespace(value) {
		return "", false
	}
	return value, true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			set[value] = struct{}{}
		}
	}
	return set
}
